package course

import "gorm.io/gorm"

// CourseProgress tracks one student's traversal through one course.
// At most one record exists per (user, course); it is created when the
// purchase is confirmed and mutated only by the progress service.
type CourseProgress struct {
	gorm.Model
	UserID           uint    `json:"user_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
	CourseID         uint    `json:"course_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
	CurrentLectureID uint    `json:"current_lecture_id"`
	OverallProgress  float64 `json:"overall_progress" gorm:"default:0"` // 0-100, derived
	// One-way flag: set on the first passing final quiz attempt, never reverted
	IsFinalQuizPassed    bool              `json:"is_final_quiz_passed" gorm:"default:false"`
	FinalQuizAttemptLeft int               `json:"final_quiz_attempt_left" gorm:"default:3"`
	LectureProgress      []LectureProgress `json:"lecture_progress" gorm:"foreignKey:CourseProgressID"`
}

// LectureProgress is one entry of the ordered per-lecture unlock list.
// Position mirrors the lecture order at enrollment time. States:
// locked (neither flag), unlocked (IsUnlocked), completed (both flags).
type LectureProgress struct {
	gorm.Model
	CourseProgressID uint `json:"course_progress_id" gorm:"index;not null"`
	LectureID        uint `json:"lecture_id" gorm:"index;not null"`
	Position         int  `json:"position"`
	IsUnlocked       bool `json:"is_unlocked" gorm:"default:false"`
	IsCompleted      bool `json:"is_completed" gorm:"default:false"`
}
