package course

import "gorm.io/gorm"

// Lecture represents one ordered lecture within a course.
// OrderIndex is assigned at creation time and never changes afterwards;
// the progress engine relies on it to walk lectures sequentially.
type Lecture struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Duration    int64  `json:"duration" gorm:"default:0"` // duration in minutes
	OrderIndex  int    `json:"order_index" gorm:"default:1"`
	// Lecture quiz pass threshold, percentage 0-100
	RequiredPassPercentage int  `json:"required_pass_percentage" gorm:"default:60"`
	IsDeleted              bool `gorm:"default:false"`
}
