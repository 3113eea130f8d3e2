package courseValidator

import (
	"strconv"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

type submitQuizRequest struct {
	// MCQ id (as JSON object key) to chosen option index
	Answers map[string]int `json:"answers"`
}

// SubmitQuiz parses a quiz submission and stashes the answers keyed by
// MCQ id. JSON object keys arrive as strings, so they are converted here
// once instead of in every handler.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(submitQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if len(reqData.Answers) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"Answers": "Answers are required!",
			})
		}

		answers := make(map[uint]int, len(reqData.Answers))
		for key, selected := range reqData.Answers {
			id, err := strconv.ParseUint(key, 10, 32)
			if err != nil || id == 0 {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"Answers": "Invalid question id: " + key,
				})
			}
			if selected < 0 {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"Answers": "Selected option must not be negative!",
				})
			}
			answers[uint(id)] = selected
		}

		c.Locals("validatedAnswers", answers)
		return c.Next()
	}
}
