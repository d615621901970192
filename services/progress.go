package services

import (
	"errors"

	"edume/models"

	"gorm.io/gorm"
)

// IsLessonOpen reports whether the lesson is unlocked for the user: a lesson
// with no previous lesson is always open, otherwise the user must have
// finished the previous one.
func IsLessonOpen(db *gorm.DB, lesson *models.Lesson, userID uint) bool {
	if lesson.PreviousID == nil {
		return true
	}
	var count int64
	db.Model(&models.LessonFinisher{}).
		Where("lesson_id = ? AND user_id = ?", *lesson.PreviousID, userID).
		Count(&count)
	return count > 0
}

// HasFinishedLesson reports finisher-set membership for one lesson.
func HasFinishedLesson(db *gorm.DB, lessonID, userID uint) bool {
	var count int64
	db.Model(&models.LessonFinisher{}).
		Where("lesson_id = ? AND user_id = ?", lessonID, userID).
		Count(&count)
	return count > 0
}

// IsModuleOpen reports whether the module is unlocked for the user.
func IsModuleOpen(db *gorm.DB, moduleID, userID uint) bool {
	var count int64
	db.Model(&models.ModuleStudent{}).
		Where("module_id = ? AND user_id = ?", moduleID, userID).
		Count(&count)
	return count > 0
}

// EndLesson marks the lesson finished for the user. Finisher membership is
// idempotent. Finishing the tail lesson of a module also records the module
// as finished and unlocks the next module of the course, resolved by the
// modules' sequence rank.
func EndLesson(db *gorm.DB, lessonID, userID uint) error {
	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	// Tail lesson: nothing chained after it.
	if lesson.NextID == nil {
		var module models.Module
		if err := db.First(&module, lesson.ModuleID).Error; err != nil {
			return err
		}

		finisher := models.ModuleFinisher{ModuleID: module.ID, UserID: userID}
		if err := db.Where(&models.ModuleFinisher{ModuleID: module.ID, UserID: userID}).
			FirstOrCreate(&finisher).Error; err != nil {
			return err
		}

		// Unlock the next module by sequence rank within the course.
		var next models.Module
		err := db.Where("course_id = ? AND sequence > ?", module.CourseID, module.Sequence).
			Order("sequence asc, id asc").
			First(&next).Error
		if err == nil {
			student := models.ModuleStudent{ModuleID: next.ID, UserID: userID}
			if err := db.Where(&models.ModuleStudent{ModuleID: next.ID, UserID: userID}).
				FirstOrCreate(&student).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	finisher := models.LessonFinisher{LessonID: lesson.ID, UserID: userID}
	return db.Where(&models.LessonFinisher{LessonID: lesson.ID, UserID: userID}).
		FirstOrCreate(&finisher).Error
}

// CountCourseLessons counts lessons across all modules of the course.
func CountCourseLessons(db *gorm.DB, courseID uint) int64 {
	var count int64
	db.Model(&models.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&count)
	return count
}

// FinishedLessons counts lessons of the module the user has finished.
func FinishedLessons(db *gorm.DB, moduleID, userID uint) int64 {
	var count int64
	db.Model(&models.LessonFinisher{}).
		Joins("JOIN lessons ON lessons.id = lesson_finishers.lesson_id").
		Where("lessons.module_id = ? AND lesson_finishers.user_id = ?", moduleID, userID).
		Count(&count)
	return count
}

// CoursePercentage is the user's completion percentage over all lessons of
// the course. A course with no lessons reads as 0.
func CoursePercentage(db *gorm.DB, courseID, userID uint) float64 {
	total := CountCourseLessons(db, courseID)
	if total == 0 {
		return 0
	}
	var finished int64
	db.Model(&models.LessonFinisher{}).
		Joins("JOIN lessons ON lessons.id = lesson_finishers.lesson_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ? AND lesson_finishers.user_id = ?", courseID, userID).
		Count(&finished)
	return float64(finished) * 100 / float64(total)
}
