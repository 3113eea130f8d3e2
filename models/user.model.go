package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage        string    `json:"profile_image" gorm:"default:''"`
	Name                string    `json:"name" gorm:"default:''"`
	Email               string    `json:"email" gorm:"unique;not null"`
	Mobile              string    `json:"mobile" gorm:"default:''"`
	Role                string    `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	Password            string    `json:"-" gorm:"not null"`
	Bio                 string    `json:"bio"`
	LastLogin           time.Time `json:"last_login" gorm:"default:NULL"`
	FailedLoginAttempts int       `json:"-" gorm:"default:0"`
	IsEmailVerified     bool      `json:"is_email_verified" gorm:"default:false"`
	IsDeleted           bool      `json:"-" gorm:"default:false"`
}
