package courseService

import (
	courseModels "learnhub/models/course"

	"gorm.io/gorm"
)

// PurchaseConfirmation is the outcome of confirming a payment order.
type PurchaseConfirmation struct {
	Payment     courseModels.Payment
	Progress    *courseModels.CourseProgress
	AlreadyPaid bool
}

// ConfirmPurchase marks a gateway order paid and enrolls the student.
// The status flip is conditional on the order still being CREATED, so a
// replayed confirm cannot revive an expired order. Enrollment runs on
// every call, including replays against an already PAID order:
// InitProgress is idempotent, so a confirm that failed between the flip
// and the enrollment is healed by retrying it instead of leaving a paid
// student without access.
func ConfirmPurchase(db *gorm.DB, userID uint, orderID string) (*PurchaseConfirmation, error) {
	var payment courseModels.Payment
	if err := db.Where("order_id = ? AND user_id = ? AND is_deleted = ?", orderID, userID, false).
		First(&payment).Error; err != nil {
		return nil, ErrPaymentNotFound
	}

	alreadyPaid := payment.Status == "PAID"
	if !alreadyPaid {
		if payment.Status != "CREATED" {
			return nil, ErrPaymentNotPayable
		}
		res := db.Model(&courseModels.Payment{}).
			Where("id = ? AND status = ?", payment.ID, "CREATED").
			Update("status", "PAID")
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrStaleProgress
		}
		payment.Status = "PAID"
	}

	progress, err := InitProgress(db, userID, payment.CourseID)
	if err != nil {
		return nil, err
	}

	return &PurchaseConfirmation{
		Payment:     payment,
		Progress:    progress,
		AlreadyPaid: alreadyPaid,
	}, nil
}
