package models

import "gorm.io/gorm"

// Module belongs to exactly one course. Sequence is the module's rank within
// the course; "next module" is resolved by rank, never by key arithmetic.
type Module struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Name       string `json:"name" gorm:"not null"`
	RequiredID *uint  `json:"required_id"` // optional prerequisite module
	Sequence   int    `json:"sequence" gorm:"index;not null;default:0"`
}

// ModuleStudent marks a module as unlocked for a user.
type ModuleStudent struct {
	gorm.Model
	ModuleID uint `json:"module_id" gorm:"uniqueIndex:idx_module_student;not null"`
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_module_student;not null"`
}

// ModuleFinisher marks a module as completed by a user.
type ModuleFinisher struct {
	gorm.Model
	ModuleID uint `json:"module_id" gorm:"uniqueIndex:idx_module_finisher;not null"`
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_module_finisher;not null"`
}
