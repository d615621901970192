package services

import (
	"testing"
	"time"

	"edume/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "998901111111")
	author := createUser(t, db, "998902222222")
	course := createCourse(t, db, author.ID, 10000)
	module := createModule(t, db, course.ID, 1)
	lessons := createLessonChain(t, db, module.ID, 1)

	t.Run("unknown course", func(t *testing.T) {
		_, err := Rate(db, user.ID, &RateSubmission{
			CourseID: 9999, ModuleID: module.ID, LessonID: lessons[0].ID, Score: 5,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown lesson", func(t *testing.T) {
		_, err := Rate(db, user.ID, &RateSubmission{
			CourseID: course.ID, ModuleID: module.ID, LessonID: 9999, Score: 5,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("accumulates the running course score", func(t *testing.T) {
		rating, err := Rate(db, user.ID, &RateSubmission{
			CourseID: course.ID, ModuleID: module.ID, LessonID: lessons[0].ID,
			Score: 5, Percent: 80,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, rating.Score)
		assert.Equal(t, 80, rating.Percent)

		_, err = Rate(db, user.ID, &RateSubmission{
			CourseID: course.ID, ModuleID: module.ID, LessonID: lessons[0].ID,
			Score: 3, Percent: 60,
		})
		require.NoError(t, err)

		var courseRating models.CourseRating
		require.NoError(t, db.Where("author_id = ? AND course_id = ?", user.ID, course.ID).
			First(&courseRating).Error)
		assert.Equal(t, 8, courseRating.Score)

		var ratings int64
		db.Model(&models.Rating{}).Where("author_id = ?", user.ID).Count(&ratings)
		assert.Equal(t, int64(2), ratings)
	})

	t.Run("lists the user's submissions", func(t *testing.T) {
		ratings, err := UserRatings(db, user.ID)
		require.NoError(t, err)
		assert.Len(t, ratings, 2)
	})
}

func TestCourseRatings(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "998901111111")
	other := createUser(t, db, "998903333333")
	author := createUser(t, db, "998902222222")
	course := createCourse(t, db, author.ID, 10000)
	module := createModule(t, db, course.ID, 1)
	lessons := createLessonChain(t, db, module.ID, 1)

	_, err := Rate(db, user.ID, &RateSubmission{
		CourseID: course.ID, ModuleID: module.ID, LessonID: lessons[0].ID, Score: 5,
	})
	require.NoError(t, err)
	_, err = Rate(db, other.ID, &RateSubmission{
		CourseID: course.ID, ModuleID: module.ID, LessonID: lessons[0].ID, Score: 9,
	})
	require.NoError(t, err)

	// Push one rating row out of the weekly window.
	stale := time.Now().AddDate(0, 0, -10)
	require.NoError(t, db.Model(&models.CourseRating{}).
		Where("author_id = ?", user.ID).
		UpdateColumn("created_at", stale).Error)

	t.Run("monthly includes both", func(t *testing.T) {
		ratings, err := CourseRatings(db, course.ID, WindowMonthly)
		require.NoError(t, err)
		require.Len(t, ratings, 2)
		assert.Equal(t, 9, ratings[0].Score)
	})

	t.Run("weekly drops the stale rating", func(t *testing.T) {
		ratings, err := CourseRatings(db, course.ID, WindowWeekly)
		require.NoError(t, err)
		require.Len(t, ratings, 1)
		assert.Equal(t, other.ID, ratings[0].AuthorID)
	})

	t.Run("daily keeps today's ratings only", func(t *testing.T) {
		ratings, err := CourseRatings(db, course.ID, WindowDaily)
		require.NoError(t, err)
		require.Len(t, ratings, 1)
		assert.Equal(t, other.ID, ratings[0].AuthorID)
	})

	t.Run("unknown window falls back to monthly", func(t *testing.T) {
		ratings, err := CourseRatings(db, course.ID, RatingWindow("yearly"))
		require.NoError(t, err)
		assert.Len(t, ratings, 2)
	})
}

func TestRecomputeFeedback(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "998901111111")
	other := createUser(t, db, "998903333333")
	author := createUser(t, db, "998902222222")
	course := createCourse(t, db, author.ID, 10000)
	module := createModule(t, db, course.ID, 1)
	lessons := createLessonChain(t, db, module.ID, 1)

	_, err := Rate(db, user.ID, &RateSubmission{
		CourseID: course.ID, ModuleID: module.ID, LessonID: lessons[0].ID, Score: 4,
	})
	require.NoError(t, err)
	_, err = Rate(db, other.ID, &RateSubmission{
		CourseID: course.ID, ModuleID: module.ID, LessonID: lessons[0].ID, Score: 8,
	})
	require.NoError(t, err)

	require.NoError(t, RecomputeFeedback(db))

	var refreshed models.Course
	require.NoError(t, db.First(&refreshed, course.ID).Error)
	assert.Equal(t, float64(6), refreshed.Feedback)
}
