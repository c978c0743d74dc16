package model

import (
	"encoding/json"
	"time"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionReviewed SubmissionStatus = "reviewed"
)

// Submission is one trainee's accepted answer set for a form. Immutable once
// stored; a correction produces a new submission pointing back via
// CorrectionOf.
// swagger:model Submission
type Submission struct {
	UUIDBase
	FormID      string    `gorm:"size:36;index;not null" json:"formId"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	SubmittedAt time.Time `json:"submittedAt"`

	// Raw answer map keyed by question id; values are string, number or
	// string-array depending on the question type.
	Answers json.RawMessage `gorm:"type:json" json:"answers"`
	Comment string          `gorm:"type:text" json:"comment,omitempty"`

	// Both nil when nothing was scorable.
	Score    *int `json:"score,omitempty"`
	MaxScore *int `json:"maxScore,omitempty"`

	Status       SubmissionStatus `gorm:"size:20;default:'pending'" json:"status"`
	CorrectionOf *string          `gorm:"size:36;index" json:"correctionOf,omitempty"`

	Form *Form `gorm:"foreignKey:FormID" json:"form,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// CorrectionEntry is one grader verdict on one question of a submission. The
// set of entries for a submission forms its correction record.
type CorrectionEntry struct {
	BaseModel
	SubmissionID string `gorm:"size:36;index;not null" json:"submissionId"`
	QuestionID   string `gorm:"size:36;index;not null" json:"questionId"`
	Correcte     bool   `gorm:"default:false" json:"correcte"`
	Comment      string `gorm:"type:text" json:"comment,omitempty"`
}

func (CorrectionEntry) TableName() string {
	return "correction_entries"
}
