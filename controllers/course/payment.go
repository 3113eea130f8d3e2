package controllers

import (
	"fmt"
	"log"
	"time"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	courseService "learnhub/services/course"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePaymentOrder registers a gateway order for a course purchase
func CreatePaymentOrder(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		First(&crs).Error; err != nil {
		return handleServiceError(c, courseService.ErrCourseNotFound)
	}

	// Already enrolled users do not pay twice
	var progress courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, crs.ID).
		First(&progress).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	receipt := fmt.Sprintf("course_%d_user_%d_%d", crs.ID, userID, time.Now().Unix())

	order, err := utils.CreateGatewayOrder(crs.Price, "INR", receipt)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to create payment order!", nil)
	}

	payment := courseModels.Payment{
		UserID:   userID,
		CourseID: crs.ID,
		OrderID:  order.OrderID,
		Receipt:  receipt,
		Amount:   crs.Price,
		Currency: order.Currency,
		Status:   "CREATED",
	}
	if err := db.Create(&payment).Error; err != nil {
		log.Printf("Error saving payment order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment order created successfully!", fiber.Map{
		"order_id": payment.OrderID,
		"amount":   payment.Amount,
		"currency": payment.Currency,
		"receipt":  payment.Receipt,
	})
}

// ConfirmPayment marks a gateway order paid and enrolls the student.
// The heavy lifting lives in courseService.ConfirmPurchase, which is
// safe to replay: a confirm retried after a partial failure still ends
// with the student enrolled.
func ConfirmPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	orderID := c.Locals("orderID").(string)

	db := database.Database.Db

	confirmation, err := courseService.ConfirmPurchase(db, userID, orderID)
	if err != nil {
		log.Printf("Error confirming order %s: %v", orderID, err)
		return handleServiceError(c, err)
	}

	message := "Payment confirmed. Course unlocked!"
	if confirmation.AlreadyPaid {
		message = "Payment already confirmed!"
	} else {
		go sendPurchaseEmail(db, userID, confirmation.Payment.CourseID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"course_id":          confirmation.Payment.CourseID,
		"current_lecture_id": confirmation.Progress.CurrentLectureID,
	})
}

func sendPurchaseEmail(db *gorm.DB, userID, courseID uint) {
	var user models.User
	var crs courseModels.Course
	if db.First(&user, userID).Error != nil || db.First(&crs, courseID).Error != nil {
		return
	}
	if err := utils.SendPurchaseConfirmationEmail(user.Email, user.Name, crs.Title); err != nil {
		log.Printf("Error sending purchase email: %v", err)
	}
}

// GetMyPayments lists the logged-in user's payment history
func GetMyPayments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var payments []courseModels.Payment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": payments,
	})
}
