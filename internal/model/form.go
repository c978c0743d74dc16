package model

import (
	"time"

	"formeo_backend/internal/scoring"
)

// Form is a time-windowed assessment presented to trainees. Question content
// is immutable for scoring purposes once a submission references it.
// swagger:model Form
type Form struct {
	UUIDBase
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	SessionTag  string     `gorm:"size:50;index" json:"sessionTag"`
	LevelTag    string     `gorm:"size:50" json:"levelTag"`
	ValidFrom   time.Time  `json:"dateDebut"`
	ValidUntil  time.Time  `json:"dateFin"`
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	Questions []Question `gorm:"foreignKey:FormID" json:"questions,omitempty"`
}

func (Form) TableName() string {
	return "forms"
}

// ActiveAt reports whether the form accepts submissions at t.
func (f *Form) ActiveAt(t time.Time) bool {
	return f.IsPublished && !t.Before(f.ValidFrom) && !t.After(f.ValidUntil)
}

// swagger:model Question
type Question struct {
	UUIDBase
	FormID   string `gorm:"size:36;index;not null" json:"formId"`
	Type     string `gorm:"size:20;not null" json:"type"`
	Label    string `gorm:"type:text;not null" json:"label"`
	Required bool   `gorm:"default:false" json:"required"`
	Position int    `gorm:"default:0" json:"position"`

	Options []string `gorm:"serializer:json" json:"options,omitempty"`

	// Numeric bounds, number questions only.
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step *float64 `json:"step,omitempty"`
	Unit string   `gorm:"size:20" json:"unit,omitempty"`

	ScoringEnabled bool     `gorm:"default:false" json:"scoringEnabled"`
	Points         int      `gorm:"default:0" json:"points"`
	CorrectAnswers []string `gorm:"serializer:json" json:"correctAnswers,omitempty"`
	NumberCorrect  *float64 `json:"numberCorrect,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// ToScoring maps the record onto the engine's view of a question.
func (q *Question) ToScoring() scoring.Question {
	return scoring.Question{
		ID:             q.ID,
		Type:           scoring.QuestionType(q.Type),
		Label:          q.Label,
		Required:       q.Required,
		Options:        q.Options,
		Points:         q.Points,
		ScoringEnabled: q.ScoringEnabled,
		CorrectAnswers: q.CorrectAnswers,
		NumberCorrect:  q.NumberCorrect,
	}
}
