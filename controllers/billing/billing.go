package billingController

import (
	"errors"

	"edume/database"
	"edume/middleware"
	"edume/models"
	"edume/payme"
	"edume/services"

	"github.com/gofiber/fiber/v2"
)

// OrderCourse opens a purchase intent for the course and returns the order id.
func OrderCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedOrder").(*struct {
		CourseID uint `json:"course"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.NotFoundResponse(c, "course", "Course not found")
	}

	order, err := services.CreateOrder(db, &course)
	if err != nil {
		return middleware.InternalErrorResponse(c, "Failed to create order")
	}

	return middleware.SuccessResponse(c, fiber.Map{"order_id": order.ID})
}

// BuyCourse creates the pending check for the order and returns the gateway
// checkout link. A second attempt against the same order is a conflict.
func BuyCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}

	reqData, ok := c.Locals("validatedBuy").(*struct {
		OrderID  uint `json:"order_id"`
		CourseID uint `json:"course"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	db := database.Database.Db

	link, _, err := services.InitiatePurchase(db, payme.NewClient(), userID, reqData.OrderID, reqData.CourseID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.NotFoundResponse(c, "order_id", "Order not found")
		}
		if errors.Is(err, services.ErrDuplicateOrder) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, map[string]string{
				"order_id": "Order duplicated",
			})
		}
		return middleware.InternalErrorResponse(c, "Failed to initiate purchase")
	}

	return middleware.SuccessResponse(c, fiber.Map{"link": link})
}

// Checks lists the caller's payment records, newest first.
func Checks(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}

	db := database.Database.Db

	var checks []models.Check
	if err := db.Where("author_id = ?", userID).Order("created_at desc").Find(&checks).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to fetch checks")
	}

	list := make([]fiber.Map, 0, len(checks))
	for i := range checks {
		check := &checks[i]

		var order models.Order
		db.First(&order, check.OrderID)
		var course models.Course
		db.First(&course, check.CourseID)

		list = append(list, fiber.Map{
			"id":        check.ID,
			"status":    check.Status,
			"reference": check.Reference,
			"created":   check.CreatedAt,
			"order": fiber.Map{
				"id":     order.ID,
				"amount": order.Amount,
			},
			"course": fiber.Map{
				"id":    course.ID,
				"name":  course.Name,
				"price": course.Price,
			},
		})
	}

	return middleware.SuccessResponse(c, fiber.Map{"checks": list})
}

// BillingReports mirrors Checks under the reporting route.
func BillingReports(c *fiber.Ctx) error {
	return Checks(c)
}
