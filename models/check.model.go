package models

import "gorm.io/gorm"

const (
	CheckStatusPending   = 0
	CheckStatusPaid      = 1
	CheckStatusCancelled = -1
)

// Check links a buyer, a course and an order and tracks payment state.
// The unique index on OrderID enforces at most one check per order; status
// moves pending -> paid or pending -> cancelled and paid is terminal.
type Check struct {
	gorm.Model
	AuthorID      uint   `json:"author_id" gorm:"index;not null"`
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	OrderID       uint   `json:"order_id" gorm:"uniqueIndex;not null"`
	Status        int    `json:"status" gorm:"default:0"`
	Reference     string `json:"reference" gorm:"default:''"` // internal receipt reference
	TransactionID string `json:"-" gorm:"default:''"`         // gateway transaction id
}
