package model

import "time"

// swagger:model TrainingCourse
type TrainingCourse struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	SessionTag  string     `gorm:"size:50;index" json:"sessionTag"`
	LevelTag    string     `gorm:"size:50" json:"levelTag"`
	DurationH   int        `gorm:"default:0" json:"durationHours"`
	PriceCents  int64      `gorm:"default:0" json:"priceCents"`
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

func (TrainingCourse) TableName() string {
	return "training_courses"
}
