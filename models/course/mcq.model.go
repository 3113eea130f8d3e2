package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MCQ is a multiple choice question belonging either to a lecture quiz
// (LectureID set) or to a course final quiz (CourseID set), never both.
type MCQ struct {
	gorm.Model
	LectureID     *uint          `json:"lecture_id" gorm:"index"`
	CourseID      *uint          `json:"course_id" gorm:"index"`
	Question      string         `json:"question" gorm:"type:text"`
	Options       datatypes.JSON `json:"options"` // JSON array of option strings
	CorrectOption int            `json:"correct_option"`
	IsDeleted     bool           `gorm:"default:false"`
}
