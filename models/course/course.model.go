package course

import "gorm.io/gorm"

// Course represents a purchasable course authored by an instructor
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	InstructorID uint   `json:"instructor_id" gorm:"index;not null"`
	Language     string `json:"language" gorm:"default:'English'"`
	MinimumSkill string `json:"minimum_skill" gorm:"default:'beginner'"` // beginner, intermediate, advanced
	Price        int64  `json:"price" gorm:"default:0"`                  // smallest currency unit
	ThumbnailURL string `json:"thumbnail_url"`
	// Final quiz pass threshold, percentage 0-100
	RequiredCompletionPercentage int    `json:"required_completion_percentage" gorm:"default:80"`
	Status                       string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	IsPublished                  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted                    bool   `gorm:"default:false"`
}
