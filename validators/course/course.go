package courseValidator

import (
	"strconv"

	"learnhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// fieldErrors flattens validator.ValidationErrors into the error map the
// response envelope expects.
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				errors[fe.Field()] = fe.Field() + " is required!"
			case "min":
				errors[fe.Field()] = fe.Field() + " must be at least " + fe.Param() + "!"
			case "max":
				errors[fe.Field()] = fe.Field() + " must be at most " + fe.Param() + "!"
			case "gte":
				errors[fe.Field()] = fe.Field() + " must be at least " + fe.Param() + "!"
			case "lte":
				errors[fe.Field()] = fe.Field() + " must be at most " + fe.Param() + "!"
			case "url":
				errors[fe.Field()] = fe.Field() + " must be a valid URL!"
			case "oneof":
				errors[fe.Field()] = "Invalid value for " + fe.Field() + "!"
			default:
				errors[fe.Field()] = "Invalid value!"
			}
		}
	}
	return errors
}

// CourseID parses the :courseId path param and stashes it for handlers
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("courseId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		c.Locals("courseID", id)
		return c.Next()
	}
}

// LectureID parses the :lectureId path param and stashes it for handlers
func LectureID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("lectureId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture id!", nil)
		}
		c.Locals("lectureID", id)
		return c.Next()
	}
}

type createCourseRequest struct {
	Title                        string `json:"title" validate:"required,min=3,max=200"`
	Description                  string `json:"description" validate:"omitempty,max=5000"`
	Language                     string `json:"language" validate:"omitempty,max=50"`
	MinimumSkill                 string `json:"minimum_skill" validate:"omitempty,oneof=beginner intermediate advanced"`
	Price                        int64  `json:"price" validate:"gte=0"`
	ThumbnailURL                 string `json:"thumbnail_url" validate:"omitempty,url"`
	RequiredCompletionPercentage int    `json:"required_completion_percentage" validate:"omitempty,gte=1,lte=100"`
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(createCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		return c.Next()
	}
}

type mcqRequest struct {
	Question      string   `json:"question" validate:"required,min=3"`
	Options       []string `json:"options" validate:"required,min=2,max=6,dive,required"`
	CorrectOption int      `json:"correct_option" validate:"gte=0"`
}

type createLectureRequest struct {
	Title                  string       `json:"title" validate:"required,min=3,max=200"`
	Description            string       `json:"description" validate:"omitempty,max=5000"`
	VideoURL               string       `json:"video_url" validate:"omitempty,url"`
	Duration               int64        `json:"duration" validate:"gte=0"`
	RequiredPassPercentage int          `json:"required_pass_percentage" validate:"omitempty,gte=1,lte=100"`
	MCQs                   []mcqRequest `json:"mcqs" validate:"required,min=1,dive"`
}

// checkCorrectOptions verifies every answer key points inside its own
// option list, which struct tags alone cannot express.
func checkCorrectOptions(mcqs []mcqRequest) map[string]string {
	for i, mcq := range mcqs {
		if mcq.CorrectOption >= len(mcq.Options) {
			return map[string]string{
				"CorrectOption": "Question " + strconv.Itoa(i+1) + ": correct_option is out of range!",
			}
		}
	}
	return nil
}

// CreateLecture validator middleware
func CreateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(createLectureRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		if errs := checkCorrectOptions(reqData.MCQs); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}
		return c.Next()
	}
}

type createFinalQuizRequest struct {
	Quiz []mcqRequest `json:"quiz" validate:"required,min=1,dive"`
}

// CreateFinalQuiz validator middleware
func CreateFinalQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(createFinalQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		if errs := checkCorrectOptions(reqData.Quiz); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}
		return c.Next()
	}
}
