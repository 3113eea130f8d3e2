package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MCQResponse is the frozen record of one answered question inside an
// attempt. It is a snapshot: later edits to the question bank do not
// change what was asked and answered.
type MCQResponse struct {
	MCQID          uint `json:"mcq_id"`
	SelectedOption int  `json:"selected_option"`
	IsCorrect      bool `json:"is_correct"`
}

// QuizAttempt is an immutable record of one quiz submission, either for
// a lecture quiz (LectureID set) or the course final quiz (CourseID set).
// Rows are only ever inserted, never updated or deleted.
type QuizAttempt struct {
	gorm.Model
	UserID         uint           `json:"user_id" gorm:"index;not null"`
	LectureID      *uint          `json:"lecture_id" gorm:"index"`
	CourseID       *uint          `json:"course_id" gorm:"index"`
	MCQResponses   datatypes.JSON `json:"mcq_responses"` // JSON array of MCQResponse
	Score          int            `json:"score"`         // 0-100
	TotalQuestions int            `json:"total_questions"`
	PassingScore   int            `json:"passing_score" gorm:"default:60"` // threshold used at grading time
	IsPassed       bool           `json:"is_passed" gorm:"default:false"`
}
