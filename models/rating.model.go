package models

import "gorm.io/gorm"

// Rating is one scored submission event against a lesson.
type Rating struct {
	gorm.Model
	AuthorID uint `json:"author_id" gorm:"index;not null"`
	CourseID uint `json:"course_id" gorm:"index;not null"`
	ModuleID uint `json:"module_id" gorm:"index;not null"`
	LessonID uint `json:"lesson_id" gorm:"index;not null"`
	Score    int  `json:"score" gorm:"default:0"`
	Percent  int  `json:"percent" gorm:"default:0"`
}

// CourseRating is the per-user running score total for a course, seeded at
// zero when the purchase completes.
type CourseRating struct {
	gorm.Model
	AuthorID uint `json:"author_id" gorm:"uniqueIndex:idx_course_rating;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_course_rating;not null"`
	Score    int  `json:"score" gorm:"default:0"`
}
