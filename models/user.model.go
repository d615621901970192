package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Phone      string `json:"phone" gorm:"unique;not null"` // used as the login name
	Email      string `json:"email" gorm:"default:''"`
	FirstName  string `json:"first_name" gorm:"default:''"`
	LastName   string `json:"last_name" gorm:"default:''"`
	MiddleName string `json:"middle_name" gorm:"default:''"`
	Bio        string `json:"bio" gorm:"default:''"`
	Image      string `json:"image" gorm:"default:''"` // external storage URL
	Activity   int    `json:"activity" gorm:"default:0"`
	IsStudent  bool   `json:"is_student" gorm:"default:true"`
	Password   string `json:"-" gorm:"not null"`
	// TokenVersion is baked into issued tokens; logout bumps it so older
	// tokens stop validating.
	TokenVersion int  `json:"-" gorm:"default:0"`
	IsDeleted    bool `json:"-" gorm:"default:false"`
}

// Public returns the user fields safe to embed in API payloads.
func (u *User) Public() map[string]interface{} {
	image := u.Image
	return map[string]interface{}{
		"id":          u.ID,
		"phone":       u.Phone,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"middle_name": u.MiddleName,
		"image":       image,
	}
}
