package services

import (
	"errors"
	"testing"

	"edume/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLinker struct {
	link string
	err  error
}

func (f *fakeLinker) GeneratePayLink(orderID uint, amount int64) (string, error) {
	return f.link, f.err
}

func TestCreateOrder(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "998902222222")
	course := createCourse(t, db, author.ID, 10000)

	order, err := CreateOrder(db, course)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), order.Amount)
}

func TestInitiatePurchase(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "998901111111")
	author := createUser(t, db, "998902222222")
	course := createCourse(t, db, author.ID, 10000)
	linker := &fakeLinker{link: "https://checkout.paycom.uz/abc"}

	t.Run("unknown order", func(t *testing.T) {
		_, _, err := InitiatePurchase(db, linker, user.ID, 9999, course.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown course", func(t *testing.T) {
		order, err := CreateOrder(db, course)
		require.NoError(t, err)
		_, _, err = InitiatePurchase(db, linker, user.ID, order.ID, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("creates a pending check and returns the link", func(t *testing.T) {
		order, err := CreateOrder(db, course)
		require.NoError(t, err)

		link, check, err := InitiatePurchase(db, linker, user.ID, order.ID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, linker.link, link)
		assert.Equal(t, models.CheckStatusPending, check.Status)
		assert.Equal(t, user.ID, check.AuthorID)
		assert.Equal(t, course.ID, check.CourseID)
		assert.NotEmpty(t, check.Reference)
	})

	t.Run("second attempt on the same order is rejected", func(t *testing.T) {
		order, err := CreateOrder(db, course)
		require.NoError(t, err)

		_, _, err = InitiatePurchase(db, linker, user.ID, order.ID, course.ID)
		require.NoError(t, err)

		_, _, err = InitiatePurchase(db, linker, user.ID, order.ID, course.ID)
		assert.ErrorIs(t, err, ErrDuplicateOrder)

		var count int64
		db.Model(&models.Check{}).Where("order_id = ?", order.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("gateway failure cancels the check", func(t *testing.T) {
		order, err := CreateOrder(db, course)
		require.NoError(t, err)

		broken := &fakeLinker{err: errors.New("gateway down")}
		_, _, err = InitiatePurchase(db, broken, user.ID, order.ID, course.ID)
		require.Error(t, err)

		check, err := FindCheckByOrder(db, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CheckStatusCancelled, check.Status)
	})
}

func TestCompletePayment(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "998901111111")
	author := createUser(t, db, "998902222222")
	course := createCourse(t, db, author.ID, 10000)
	module := createModule(t, db, course.ID, 1)
	createModule(t, db, course.ID, 2)
	linker := &fakeLinker{link: "https://checkout.paycom.uz/abc"}

	t.Run("unknown order is a no-op", func(t *testing.T) {
		check, err := CompletePayment(db, 9999)
		require.NoError(t, err)
		assert.Nil(t, check)
	})

	order, err := CreateOrder(db, course)
	require.NoError(t, err)
	_, _, err = InitiatePurchase(db, linker, user.ID, order.ID, course.ID)
	require.NoError(t, err)

	t.Run("pending check becomes paid and enrolls the student", func(t *testing.T) {
		check, err := CompletePayment(db, order.ID)
		require.NoError(t, err)
		require.NotNil(t, check)
		assert.Equal(t, models.CheckStatusPaid, check.Status)

		var students int64
		db.Model(&models.CourseStudent{}).
			Where("course_id = ? AND user_id = ?", course.ID, user.ID).
			Count(&students)
		assert.Equal(t, int64(1), students)

		// Only the first module by sequence opens.
		assert.True(t, IsModuleOpen(db, module.ID, user.ID))
		var unlocked int64
		db.Model(&models.ModuleStudent{}).Where("user_id = ?", user.ID).Count(&unlocked)
		assert.Equal(t, int64(1), unlocked)

		var rating models.CourseRating
		require.NoError(t, db.Where("author_id = ? AND course_id = ?", user.ID, course.ID).
			First(&rating).Error)
		assert.Equal(t, 0, rating.Score)
	})

	t.Run("redelivered callback does not enroll twice", func(t *testing.T) {
		check, err := CompletePayment(db, order.ID)
		require.NoError(t, err)
		assert.Nil(t, check)

		var students int64
		db.Model(&models.CourseStudent{}).
			Where("course_id = ? AND user_id = ?", course.ID, user.ID).
			Count(&students)
		assert.Equal(t, int64(1), students)
	})

	t.Run("cancel leaves a paid check untouched", func(t *testing.T) {
		require.NoError(t, CancelPayment(db, order.ID))

		check, err := FindCheckByOrder(db, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CheckStatusPaid, check.Status)
	})
}

func TestCompletePaymentEnrollmentFailure(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "998901111111")
	author := createUser(t, db, "998902222222")
	course := createCourse(t, db, author.ID, 10000)
	createModule(t, db, course.ID, 1)
	linker := &fakeLinker{link: "https://checkout.paycom.uz/abc"}

	order, err := CreateOrder(db, course)
	require.NoError(t, err)
	_, _, err = InitiatePurchase(db, linker, user.ID, order.ID, course.ID)
	require.NoError(t, err)

	// Break the enrollment insert so the side effect fails after the status
	// update.
	require.NoError(t, db.Migrator().DropTable(&models.CourseStudent{}))

	_, err = CompletePayment(db, order.ID)
	require.Error(t, err)

	check, err := FindCheckByOrder(db, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CheckStatusPending, check.Status)

	// With the table back, the redelivered callback completes the payment.
	require.NoError(t, db.Migrator().CreateTable(&models.CourseStudent{}))

	paid, err := CompletePayment(db, order.ID)
	require.NoError(t, err)
	require.NotNil(t, paid)
	assert.Equal(t, models.CheckStatusPaid, paid.Status)

	var students int64
	db.Model(&models.CourseStudent{}).
		Where("course_id = ? AND user_id = ?", course.ID, user.ID).
		Count(&students)
	assert.Equal(t, int64(1), students)
}

func TestAttachTransaction(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "998901111111")
	author := createUser(t, db, "998902222222")
	course := createCourse(t, db, author.ID, 10000)
	linker := &fakeLinker{link: "https://checkout.paycom.uz/abc"}

	order, err := CreateOrder(db, course)
	require.NoError(t, err)
	_, _, err = InitiatePurchase(db, linker, user.ID, order.ID, course.ID)
	require.NoError(t, err)

	t.Run("stores the gateway transaction id", func(t *testing.T) {
		require.NoError(t, AttachTransaction(db, order.ID, "txn-123"))

		check, err := FindCheckByOrder(db, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "txn-123", check.TransactionID)
	})

	t.Run("no pending check to attach to", func(t *testing.T) {
		require.NoError(t, CancelPayment(db, order.ID))
		assert.ErrorIs(t, AttachTransaction(db, order.ID, "txn-456"), ErrNotFound)
	})
}
