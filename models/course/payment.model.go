package course

import "gorm.io/gorm"

// Payment tracks one gateway order for a course purchase. Confirming a
// payment flips it to PAID and creates the enrollment progress record.
type Payment struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	OrderID   string `json:"order_id" gorm:"index"` // gateway order id
	Receipt   string `json:"receipt"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency" gorm:"default:'INR'"`
	Status    string `json:"status" gorm:"default:'CREATED'"` // CREATED, PAID, EXPIRED, FAILED
	IsDeleted bool   `gorm:"default:false"`
}
