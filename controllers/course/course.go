package controllers

import (
	"errors"

	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	courseService "learnhub/services/course"

	"github.com/gofiber/fiber/v2"
)

// handleServiceError maps progress-engine sentinel errors onto HTTP
// responses. Unknown errors are treated as persistence failures.
func handleServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, courseService.ErrCourseNotFound),
		errors.Is(err, courseService.ErrLectureNotFound),
		errors.Is(err, courseService.ErrQuizNotFound),
		errors.Is(err, courseService.ErrCertificateNotFound),
		errors.Is(err, courseService.ErrPaymentNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	case errors.Is(err, courseService.ErrProgressNotFound):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, err.Error(), nil)
	case errors.Is(err, courseService.ErrNotActiveLecture),
		errors.Is(err, courseService.ErrLectureCompleted),
		errors.Is(err, courseService.ErrLecturesIncomplete),
		errors.Is(err, courseService.ErrAttemptsExhausted),
		errors.Is(err, courseService.ErrMissingAnswers),
		errors.Is(err, courseService.ErrCourseHasNoLectures),
		errors.Is(err, courseService.ErrPaymentNotPayable):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case errors.Is(err, courseService.ErrStaleProgress):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ? AND status = ?", false, true, "ACTIVE")

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns one published course with its lecture outline.
// Lectures carry titles and durations only; quiz content stays hidden
// until the lecture is reached through the progress engine.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var crs courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	type lectureOutline struct {
		ID       uint   `json:"id"`
		Title    string `json:"title"`
		Duration int64  `json:"duration"`
		Order    int    `json:"order"`
	}

	var lectures []courseModels.Lecture
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", crs.ID, false).
		Order("order_index asc").Find(&lectures)

	outline := make([]lectureOutline, len(lectures))
	for i, lec := range lectures {
		outline[i] = lectureOutline{ID: lec.ID, Title: lec.Title, Duration: lec.Duration, Order: lec.OrderIndex}
	}

	// Enrollment flag for logged-in users
	isEnrolled := false
	if userID, ok := c.Locals("userId").(uint); ok {
		var progress courseModels.CourseProgress
		isEnrolled = database.Database.Db.
			Where("user_id = ? AND course_id = ?", userID, crs.ID).
			First(&progress).Error == nil
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      crs,
		"lectures":    outline,
		"is_enrolled": isEnrolled,
	})
}
