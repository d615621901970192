package models

import "gorm.io/gorm"

// Subject is immutable reference data attached to courses.
type Subject struct {
	gorm.Model
	Name string `json:"name" gorm:"not null"`
}
