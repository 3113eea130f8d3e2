package courseService

import (
	"math"

	courseModels "learnhub/models/course"
)

// QuizResult is the outcome of grading one submission.
type QuizResult struct {
	CorrectAnswers int                        `json:"correct_answers"`
	TotalQuestions int                        `json:"total_questions"`
	Percentage     int                        `json:"percentage"`
	IsPassed       bool                       `json:"is_passed"`
	Responses      []courseModels.MCQResponse `json:"-"`
}

// GradeQuiz scores a submission against a question set. answers maps MCQ id
// to the selected option index. Every question must be answered or the whole
// submission is rejected with ErrMissingAnswers; partial submissions are not
// gradeable. Pure: no database access, same input gives same output.
func GradeQuiz(mcqs []courseModels.MCQ, answers map[uint]int, passPercentage int) (QuizResult, error) {
	if len(mcqs) == 0 {
		return QuizResult{}, ErrQuizNotFound
	}

	for _, mcq := range mcqs {
		if _, ok := answers[mcq.ID]; !ok {
			return QuizResult{}, ErrMissingAnswers
		}
	}

	correctAnswers := 0
	responses := make([]courseModels.MCQResponse, 0, len(mcqs))
	for _, mcq := range mcqs {
		selected := answers[mcq.ID]
		isCorrect := selected == mcq.CorrectOption
		if isCorrect {
			correctAnswers++
		}
		responses = append(responses, courseModels.MCQResponse{
			MCQID:          mcq.ID,
			SelectedOption: selected,
			IsCorrect:      isCorrect,
		})
	}

	totalQuestions := len(mcqs)
	percentage := int(math.Round(float64(correctAnswers) / float64(totalQuestions) * 100))

	return QuizResult{
		CorrectAnswers: correctAnswers,
		TotalQuestions: totalQuestions,
		Percentage:     percentage,
		IsPassed:       percentage >= passPercentage,
		Responses:      responses,
	}, nil
}
