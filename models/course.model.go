package models

import "gorm.io/gorm"

// Course is owned by its author; price is in integer currency units.
type Course struct {
	gorm.Model
	AuthorID    uint    `json:"author_id" gorm:"index;not null"`
	Name        string  `json:"name" gorm:"not null"`
	Image       string  `json:"image" gorm:"default:''"` // external storage URL
	SubjectID   *uint   `json:"subject_id" gorm:"index"`
	Description string  `json:"description" gorm:"type:text"`
	Price       int64   `json:"price" gorm:"default:0"`
	Feedback    float64 `json:"feedback" gorm:"default:0"`
	IsDeleted   bool    `json:"-" gorm:"default:false"`
}

// CourseStudent is one row per enrolled user. The composite unique index makes
// enrollment idempotent under concurrent inserts.
type CourseStudent struct {
	gorm.Model
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_course_student;not null"`
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_course_student;not null"`
}

// CourseFeedbacker is one row per user who left feedback on the course.
type CourseFeedbacker struct {
	gorm.Model
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_course_feedbacker;not null"`
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_course_feedbacker;not null"`
}
