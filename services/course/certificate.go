package courseService

import (
	"time"

	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IssueCertificate creates at most one certificate per (student, course).
// If one already exists it is returned unchanged with created=false, so a
// repeated passing submission is a no-op. Display fields are snapshotted
// at issuance time instead of joined live. The unique index on
// (user_id, course_id) backstops the lookup against a concurrent insert.
func IssueCertificate(db *gorm.DB, student models.User, crs courseModels.Course, instructorName string, attempt courseModels.QuizAttempt) (bool, *courseModels.Certificate, error) {
	var existing courseModels.Certificate
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", student.ID, crs.ID, false).
		First(&existing).Error; err == nil {
		return false, &existing, nil
	}

	completedAt := attempt.CreatedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	cert := courseModels.Certificate{
		UserID:            student.ID,
		CourseID:          crs.ID,
		LearnerName:       student.Name,
		CourseName:        crs.Title,
		InstructorName:    instructorName,
		CertificateNumber: uuid.NewString(),
		FinalQuizScore:    attempt.Score,
		IssuedAt:          time.Now(),
		CompletedAt:       completedAt,
		Status:            "ISSUED",
	}

	if err := db.Create(&cert).Error; err != nil {
		// Unique-index conflict: a concurrent issuance won. Inside an
		// open transaction this lookup fails too and the submission
		// rolls back wholesale; the retried submission then finds the
		// winner through the lookup at the top.
		var winner courseModels.Certificate
		if lookupErr := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", student.ID, crs.ID, false).
			First(&winner).Error; lookupErr == nil {
			return false, &winner, nil
		}
		return false, nil, err
	}
	return true, &cert, nil
}

// VerifyCertificate resolves a certificate by its public number.
func VerifyCertificate(db *gorm.DB, certificateNumber string) (*courseModels.Certificate, error) {
	var cert courseModels.Certificate
	if err := db.Where("certificate_number = ? AND is_deleted = ?", certificateNumber, false).
		First(&cert).Error; err != nil {
		return nil, ErrCertificateNotFound
	}
	return &cert, nil
}

// RevokeCertificate marks an issued certificate REVOKED. Idempotent in
// effect: revoking twice fails the second time with not-found semantics.
func RevokeCertificate(db *gorm.DB, certificateNumber string) error {
	res := db.Model(&courseModels.Certificate{}).
		Where("certificate_number = ? AND status = ? AND is_deleted = ?", certificateNumber, "ISSUED", false).
		Update("status", "REVOKED")
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCertificateNotFound
	}
	return nil
}
