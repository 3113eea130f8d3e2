package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	courseService "learnhub/services/course"

	"github.com/gofiber/fiber/v2"
)

// VerifyCertificate is the public lookup used by employers and the
// certificate page. No auth required.
func VerifyCertificate(c *fiber.Ctx) error {
	certificateNumber := c.Locals("certificateNumber").(string)

	cert, err := courseService.VerifyCertificate(database.Database.Db, certificateNumber)
	if err != nil {
		return handleServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified successfully!", fiber.Map{
		"certificate_number": cert.CertificateNumber,
		"learner_name":       cert.LearnerName,
		"course_name":        cert.CourseName,
		"instructor_name":    cert.InstructorName,
		"final_quiz_score":   cert.FinalQuizScore,
		"issued_at":          cert.IssuedAt,
		"status":             cert.Status,
	})
}

// RevokeCertificate marks a certificate as revoked (admin only)
func RevokeCertificate(c *fiber.Ctx) error {
	certificateNumber := c.Locals("certificateNumber").(string)

	if err := courseService.RevokeCertificate(database.Database.Db, certificateNumber); err != nil {
		return handleServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate revoked successfully!", nil)
}
