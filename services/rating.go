package services

import (
	"errors"
	"time"

	"edume/models"

	"gorm.io/gorm"
)

// RatingWindow selects the reporting period for course ratings.
type RatingWindow string

const (
	WindowMonthly RatingWindow = "monthly"
	WindowWeekly  RatingWindow = "weekly"
	WindowDaily   RatingWindow = "daily"
)

// RateSubmission is one scored submission event.
type RateSubmission struct {
	CourseID uint `json:"course"`
	ModuleID uint `json:"module"`
	LessonID uint `json:"lesson"`
	Score    int  `json:"score"`
	Percent  int  `json:"percent"`
}

// Rate records the submission and folds its score into the user's running
// course total. The course rating row normally exists from purchase time; a
// missing one is created rather than failing the submission.
func Rate(db *gorm.DB, authorID uint, sub *RateSubmission) (*models.Rating, error) {
	var course models.Course
	if err := db.First(&course, sub.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var module models.Module
	if err := db.First(&module, sub.ModuleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var lesson models.Lesson
	if err := db.First(&lesson, sub.LessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rating := models.Rating{
		AuthorID: authorID,
		CourseID: course.ID,
		ModuleID: module.ID,
		LessonID: lesson.ID,
		Score:    sub.Score,
		Percent:  sub.Percent,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		courseRating := models.CourseRating{AuthorID: authorID, CourseID: course.ID}
		if err := tx.Where(&models.CourseRating{AuthorID: authorID, CourseID: course.ID}).
			FirstOrCreate(&courseRating).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.CourseRating{}).
			Where("id = ?", courseRating.ID).
			UpdateColumn("score", gorm.Expr("score + ?", sub.Score)).Error; err != nil {
			return err
		}
		return tx.Create(&rating).Error
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// UserRatings lists the user's rating submissions, newest first.
func UserRatings(db *gorm.DB, authorID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := db.Where("author_id = ?", authorID).
		Order("created_at desc").
		Find(&ratings).Error
	return ratings, err
}

// CourseRatings reports the course's rating totals filtered by window:
// monthly the last 30 days, weekly the last 7, daily the current calendar
// day. Unknown windows fall back to monthly.
func CourseRatings(db *gorm.DB, courseID uint, window RatingWindow) ([]models.CourseRating, error) {
	now := time.Now()
	var since, until time.Time

	switch window {
	case WindowWeekly:
		since = now.AddDate(0, 0, -7)
		until = now
	case WindowDaily:
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		until = since.AddDate(0, 0, 1)
	default: // monthly
		since = now.AddDate(0, 0, -30)
		until = now
	}

	var ratings []models.CourseRating
	err := db.Where("course_id = ? AND created_at >= ? AND created_at <= ?", courseID, since, until).
		Order("score desc").
		Find(&ratings).Error
	return ratings, err
}

// RecomputeFeedback refreshes every course's aggregate feedback score from
// the accumulated course ratings. Invoked by the daily scheduler.
func RecomputeFeedback(db *gorm.DB) error {
	type courseAvg struct {
		CourseID uint
		Avg      float64
	}
	var avgs []courseAvg
	if err := db.Model(&models.CourseRating{}).
		Select("course_id, AVG(score) as avg").
		Group("course_id").
		Scan(&avgs).Error; err != nil {
		return err
	}

	for _, a := range avgs {
		if err := db.Model(&models.Course{}).
			Where("id = ?", a.CourseID).
			Update("feedback", a.Avg).Error; err != nil {
			return err
		}
	}
	return nil
}
