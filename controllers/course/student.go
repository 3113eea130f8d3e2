package controllers

import (
	"encoding/json"
	"log"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	courseService "learnhub/services/course"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
)

type mcqView struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// stripAnswerKey converts stored questions into the student-facing view,
// dropping the correct option index.
func stripAnswerKey(mcqs []courseModels.MCQ) []mcqView {
	views := make([]mcqView, len(mcqs))
	for i, mcq := range mcqs {
		var options []string
		if err := json.Unmarshal(mcq.Options, &options); err != nil {
			log.Printf("Error decoding MCQ %d options: %v", mcq.ID, err)
		}
		views[i] = mcqView{ID: mcq.ID, Question: mcq.Question, Options: options}
	}
	return views
}

// GetStudentCourse returns the enrolled view of a course: every lecture
// with its unlock state, and quiz questions only for unlocked lectures.
func GetStudentCourse(c *fiber.Ctx) error {
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

	var progress courseModels.CourseProgress
	if err := db.Preload("LectureProgress").
		Where("user_id = ? AND course_id = ?", userID, crs.ID).
		First(&progress).Error; err != nil {
		return handleServiceError(c, courseService.ErrProgressNotFound)
	}

	stateByLecture := make(map[uint]courseModels.LectureProgress, len(progress.LectureProgress))
	for _, entry := range progress.LectureProgress {
		stateByLecture[entry.LectureID] = entry
	}

	var lectures []courseModels.Lecture
	db.Where("course_id = ? AND is_deleted = ?", crs.ID, false).
		Order("order_index asc").Find(&lectures)

	type lectureView struct {
		ID          uint      `json:"id"`
		Title       string    `json:"title"`
		Description string    `json:"description,omitempty"`
		VideoURL    string    `json:"video_url,omitempty"`
		Duration    int64     `json:"duration"`
		Order       int       `json:"order"`
		IsUnlocked  bool      `json:"is_unlocked"`
		IsCompleted bool      `json:"is_completed"`
		Quiz        []mcqView `json:"quiz,omitempty"`
	}

	views := make([]lectureView, 0, len(lectures))
	for _, lec := range lectures {
		view := lectureView{
			ID:       lec.ID,
			Title:    lec.Title,
			Duration: lec.Duration,
			Order:    lec.OrderIndex,
		}
		state, tracked := stateByLecture[lec.ID]
		if tracked && state.IsUnlocked {
			view.IsUnlocked = true
			view.IsCompleted = state.IsCompleted
			view.Description = lec.Description
			view.VideoURL = lec.VideoURL

			var mcqs []courseModels.MCQ
			db.Where("lecture_id = ? AND is_deleted = ?", lec.ID, false).
				Order("id asc").Find(&mcqs)
			view.Quiz = stripAnswerKey(mcqs)
		}
		views = append(views, view)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":   crs,
		"lectures": views,
		"progress": fiber.Map{
			"overall_progress":        progress.OverallProgress,
			"current_lecture_id":      progress.CurrentLectureID,
			"is_final_quiz_passed":    progress.IsFinalQuizPassed,
			"final_quiz_attempt_left": progress.FinalQuizAttemptLeft,
		},
	})
}

// GetFinalQuizForStudent returns the final quiz questions without answer
// keys. Available only once every lecture is completed.
func GetFinalQuizForStudent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var progress courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error; err != nil {
		return handleServiceError(c, courseService.ErrProgressNotFound)
	}
	if progress.OverallProgress != 100 {
		return handleServiceError(c, courseService.ErrLecturesIncomplete)
	}

	var mcqs []courseModels.MCQ
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("id asc").Find(&mcqs).Error; err != nil || len(mcqs) == 0 {
		return handleServiceError(c, courseService.ErrQuizNotFound)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Final quiz fetched successfully!", fiber.Map{
		"quiz":          stripAnswerKey(mcqs),
		"attempts_left": progress.FinalQuizAttemptLeft,
	})
}

// SubmitLectureQuiz grades a lecture quiz submission and, on a pass,
// advances the unlock cursor to the next lecture.
func SubmitLectureQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)
	lectureID := c.Locals("lectureID").(int)
	answers := c.Locals("validatedAnswers").(map[uint]int)

	result, err := courseService.SubmitLectureQuiz(database.Database.Db, userID, uint(courseID), uint(lectureID), answers)
	if err != nil {
		return handleServiceError(c, err)
	}

	message := "Quiz submitted. Better luck on the next attempt!"
	if result.IsPassed {
		message = "Quiz passed! Next lecture unlocked."
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"score":           result.Percentage,
		"correct_answers": result.CorrectAnswers,
		"total_questions": result.TotalQuestions,
		"is_passed":       result.IsPassed,
	})
}

// SubmitFinalQuiz grades a final-exam submission. A pass issues the
// course certificate in the same transaction as the attempt record.
func SubmitFinalQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)
	answers := c.Locals("validatedAnswers").(map[uint]int)

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	result, err := courseService.SubmitFinalExam(db, student, uint(courseID), answers)
	if err != nil {
		return handleServiceError(c, err)
	}

	data := fiber.Map{
		"score":           result.Percentage,
		"correct_answers": result.CorrectAnswers,
		"total_questions": result.TotalQuestions,
		"is_passed":       result.IsPassed,
		"attempts_left":   result.AttemptsLeft,
	}

	message := "Final quiz submitted. You did not reach the passing score."
	if result.IsPassed {
		message = "Congratulations! You passed the final quiz."
		data["certificate"] = result.Certificate

		if result.CertificateCreated {
			cert := result.Certificate
			go func() {
				if err := utils.SendCertificateIssuedEmail(student.Email, cert.LearnerName, cert.CourseName, cert.CertificateNumber); err != nil {
					log.Printf("Error sending certificate email: %v", err)
				}
			}()
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, data)
}

// GetProgress returns the compact progress summary for one enrollment
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	var progress courseModels.CourseProgress
	if err := database.Database.Db.Preload("LectureProgress").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error; err != nil {
		return handleServiceError(c, courseService.ErrProgressNotFound)
	}

	completed := 0
	for _, entry := range progress.LectureProgress {
		if entry.IsCompleted {
			completed++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"overall_progress":        progress.OverallProgress,
		"current_lecture_id":      progress.CurrentLectureID,
		"completed_lectures":      completed,
		"total_lectures":          len(progress.LectureProgress),
		"is_final_quiz_passed":    progress.IsFinalQuizPassed,
		"final_quiz_attempt_left": progress.FinalQuizAttemptLeft,
	})
}

// GetMyCertificates lists the certificates earned by the logged-in user
func GetMyCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
	})
}
