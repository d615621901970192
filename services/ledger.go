package services

import (
	"errors"
	"log"

	"edume/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PayLinker produces a hosted checkout link for an order. Implemented by the
// payment gateway client; faked in tests.
type PayLinker interface {
	GeneratePayLink(orderID uint, amount int64) (string, error)
}

// CreateOrder opens a purchase intent for the course. Every call creates a
// fresh order; deduplication happens at check creation, not here. Amount is
// converted to minor currency units.
func CreateOrder(db *gorm.DB, course *models.Course) (*models.Order, error) {
	order := models.Order{Amount: course.Price * 100}
	if err := db.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// InitiatePurchase creates the pending check for the order and returns the
// gateway checkout link. The exists-check and the insert run inside one
// transaction, and the unique index on checks.order_id backs it up, so two
// concurrent purchase attempts cannot both create a check. A gateway failure
// cancels the check and surfaces to the caller.
func InitiatePurchase(db *gorm.DB, linker PayLinker, userID, orderID, courseID uint) (string, *models.Check, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrNotFound
		}
		return "", nil, err
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrNotFound
		}
		return "", nil, err
	}

	check := models.Check{
		AuthorID:  userID,
		CourseID:  course.ID,
		OrderID:   order.ID,
		Status:    models.CheckStatusPending,
		Reference: uuid.NewString(),
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Check
		if err := tx.Where("order_id = ?", order.ID).First(&existing).Error; err == nil {
			return ErrDuplicateOrder
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&check).Error
	})
	if err != nil {
		return "", nil, err
	}

	link, err := linker.GeneratePayLink(order.ID, order.Amount)
	if err != nil {
		// The purchase must not be lost silently: void the check and report.
		if cErr := CancelPayment(db, order.ID); cErr != nil {
			log.Printf("Failed to cancel check for order %d: %v", order.ID, cErr)
		}
		return "", nil, err
	}

	return link, &check, nil
}

// CompletePayment transitions the order's check from pending to paid and runs
// the enrollment side effects. The transition is a conditional update guarded
// by the current status, so redelivered callbacks find zero affected rows and
// return without re-enrolling. Returns the paid check, or nil when there was
// nothing to do.
func CompletePayment(db *gorm.DB, orderID uint) (*models.Check, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var check models.Check
	if err := db.Where("order_id = ?", order.ID).First(&check).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// The status update and the enrollment commit or roll back together: a
	// failed enrollment leaves the check pending so a redelivered callback
	// can complete it.
	var paid *models.Check
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Check{}).
			Where("id = ? AND status = ?", check.ID, models.CheckStatusPending).
			Update("status", models.CheckStatusPaid)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already paid or cancelled; enrollment must not run twice.
			return nil
		}
		check.Status = models.CheckStatusPaid

		if err := enroll(tx, &check); err != nil {
			return err
		}
		paid = &check
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// enroll runs the post-payment side effects: course membership, first-module
// unlock and the zero-seeded course rating. Every insert is an idempotent
// set-union on a unique join row.
func enroll(db *gorm.DB, check *models.Check) error {
	student := models.CourseStudent{CourseID: check.CourseID, UserID: check.AuthorID}
	if err := db.Where(&models.CourseStudent{CourseID: check.CourseID, UserID: check.AuthorID}).
		FirstOrCreate(&student).Error; err != nil {
		return err
	}

	var first models.Module
	err := db.Where("course_id = ?", check.CourseID).
		Order("sequence asc, id asc").
		First(&first).Error
	if err == nil {
		unlocked := models.ModuleStudent{ModuleID: first.ID, UserID: check.AuthorID}
		if err := db.Where(&models.ModuleStudent{ModuleID: first.ID, UserID: check.AuthorID}).
			FirstOrCreate(&unlocked).Error; err != nil {
			return err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	rating := models.CourseRating{AuthorID: check.AuthorID, CourseID: check.CourseID, Score: 0}
	return db.Where(&models.CourseRating{AuthorID: check.AuthorID, CourseID: check.CourseID}).
		FirstOrCreate(&rating).Error
}

// CancelPayment voids a still-pending check. Paid checks are terminal and are
// left untouched.
func CancelPayment(db *gorm.DB, orderID uint) error {
	return db.Model(&models.Check{}).
		Where("order_id = ? AND status = ?", orderID, models.CheckStatusPending).
		Update("status", models.CheckStatusCancelled).Error
}

// AttachTransaction stores the gateway transaction id on the order's pending
// check so callback retries can be correlated.
func AttachTransaction(db *gorm.DB, orderID uint, transactionID string) error {
	res := db.Model(&models.Check{}).
		Where("order_id = ? AND status = ?", orderID, models.CheckStatusPending).
		Update("transaction_id", transactionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindCheckByOrder loads the check bound to the order, if any.
func FindCheckByOrder(db *gorm.DB, orderID uint) (*models.Check, error) {
	var check models.Check
	if err := db.Where("order_id = ?", orderID).First(&check).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &check, nil
}
