package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is issued at most once per (user, course). All display
// fields are denormalized snapshots taken at issuance time so the
// certificate stays stable even if the course or user is later renamed.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"uniqueIndex:idx_certificate_user_course;not null"`
	CourseID          uint      `json:"course_id" gorm:"uniqueIndex:idx_certificate_user_course;not null"`
	LearnerName       string    `json:"learner_name"`
	CourseName        string    `json:"course_name"`
	InstructorName    string    `json:"instructor_name"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique;not null"`
	FinalQuizScore    int       `json:"final_quiz_score"`
	IssuedAt          time.Time `json:"issued_at"`
	CompletedAt       time.Time `json:"completed_at"`
	Status            string    `json:"status" gorm:"default:'ISSUED'"` // ISSUED, REVOKED
	IsDeleted         bool      `gorm:"default:false"`
}
