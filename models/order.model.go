package models

import "gorm.io/gorm"

// Order is a priced purchase intent. Amount is in minor currency units
// (course price x 100), the denomination the payment gateway expects.
type Order struct {
	gorm.Model
	Amount int64 `json:"amount" gorm:"not null"`
}
