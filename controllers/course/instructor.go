package controllers

import (
	"encoding/json"
	"errors"
	"log"

	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	courseService "learnhub/services/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type mcqInput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

var errNotCourseOwner = errors.New("you do not own this course")

// ownedCourse loads a course and checks the requesting instructor owns it
func ownedCourse(userID uint, courseID int) (*courseModels.Course, error) {
	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return nil, courseService.ErrCourseNotFound
	}
	if crs.InstructorID != userID {
		return nil, errNotCourseOwner
	}
	return &crs, nil
}

func respondOwnershipError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errNotCourseOwner) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}
	return handleServiceError(c, err)
}

// CreateCourse creates a new draft course for the instructor
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Title                        string `json:"title"`
		Description                  string `json:"description"`
		Language                     string `json:"language"`
		MinimumSkill                 string `json:"minimum_skill"`
		Price                        int64  `json:"price"`
		ThumbnailURL                 string `json:"thumbnail_url"`
		RequiredCompletionPercentage int    `json:"required_completion_percentage"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	crs := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		InstructorID: userID,
		Language:     reqData.Language,
		MinimumSkill: reqData.MinimumSkill,
		Price:        reqData.Price,
		ThumbnailURL: reqData.ThumbnailURL,
		Status:       "DRAFT",
	}
	if reqData.RequiredCompletionPercentage > 0 {
		crs.RequiredCompletionPercentage = reqData.RequiredCompletionPercentage
	}

	if err := database.Database.Db.Create(&crs).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", crs)
}

// PublishCourse makes a draft course visible to students. A course
// cannot be published until it has at least one lecture to walk.
func PublishCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	crs, err := ownedCourse(userID, courseID)
	if err != nil {
		return respondOwnershipError(c, err)
	}

	var lectureCount int64
	database.Database.Db.Model(&courseModels.Lecture{}).
		Where("course_id = ? AND is_deleted = ?", crs.ID, false).Count(&lectureCount)
	if lectureCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Add at least one lecture before publishing!", nil)
	}

	if err := database.Database.Db.Model(crs).Updates(map[string]interface{}{
		"is_published": true,
		"status":       "ACTIVE",
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", nil)
}

// CreateLecture appends a lecture (with its gating quiz) to a course.
// The order index is assigned server-side so the lecture sequence the
// progress engine walks is always gapless and append-only.
func CreateLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	crs, err := ownedCourse(userID, courseID)
	if err != nil {
		return respondOwnershipError(c, err)
	}

	reqData := new(struct {
		Title                  string     `json:"title"`
		Description            string     `json:"description"`
		VideoURL               string     `json:"video_url"`
		Duration               int64      `json:"duration"`
		RequiredPassPercentage int        `json:"required_pass_percentage"`
		MCQs                   []mcqInput `json:"mcqs"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var highest courseModels.Lecture
	newOrder := 1
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", crs.ID, false).
		Order("order_index desc").First(&highest).Error; err == nil {
		newOrder = highest.OrderIndex + 1
	}

	lecture := courseModels.Lecture{
		CourseID:    crs.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		VideoURL:    reqData.VideoURL,
		Duration:    reqData.Duration,
		OrderIndex:  newOrder,
	}
	if reqData.RequiredPassPercentage > 0 {
		lecture.RequiredPassPercentage = reqData.RequiredPassPercentage
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lecture).Error; err != nil {
			return err
		}
		for _, input := range reqData.MCQs {
			options, err := json.Marshal(input.Options)
			if err != nil {
				return err
			}
			mcq := courseModels.MCQ{
				LectureID:     &lecture.ID,
				Question:      input.Question,
				Options:       options,
				CorrectOption: input.CorrectOption,
			}
			if err := tx.Create(&mcq).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating lecture: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture created successfully!", lecture)
}

// CreateFinalQuiz creates the course-level final quiz question set
func CreateFinalQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	crs, err := ownedCourse(userID, courseID)
	if err != nil {
		return respondOwnershipError(c, err)
	}

	var existing int64
	database.Database.Db.Model(&courseModels.MCQ{}).
		Where("course_id = ? AND is_deleted = ?", crs.ID, false).Count(&existing)
	if existing > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Final quiz already exists for this course!", nil)
	}

	reqData := new(struct {
		Quiz []mcqInput `json:"quiz"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		for _, input := range reqData.Quiz {
			options, err := json.Marshal(input.Options)
			if err != nil {
				return err
			}
			mcq := courseModels.MCQ{
				CourseID:      &crs.ID,
				Question:      input.Question,
				Options:       options,
				CorrectOption: input.CorrectOption,
			}
			if err := tx.Create(&mcq).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating final quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create final quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Final quiz created successfully!", nil)
}

// GetFinalQuiz returns the final quiz with answer keys (owner only)
func GetFinalQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	crs, err := ownedCourse(userID, courseID)
	if err != nil {
		return respondOwnershipError(c, err)
	}

	var mcqs []courseModels.MCQ
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", crs.ID, false).
		Order("id asc").Find(&mcqs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch final quiz!", nil)
	}
	if len(mcqs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Final quiz not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Final quiz fetched successfully!", fiber.Map{
		"quiz": mcqs,
	})
}
