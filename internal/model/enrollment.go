package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentAccepted EnrollmentStatus = "accepted"
	EnrollmentRefused  EnrollmentStatus = "refused"
)

// EnrollmentRequest is a trainee asking to join a course. State-stamped, no
// workflow beyond accept/refuse.
type EnrollmentRequest struct {
	BaseModel
	CourseID  uint             `gorm:"index;not null" json:"courseId"`
	UserID    uint             `gorm:"index;not null" json:"userId"`
	Message   string           `gorm:"type:text" json:"message"`
	Status    EnrollmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	DecidedAt *time.Time       `json:"decidedAt,omitempty"`

	Course *TrainingCourse `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	User   *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (EnrollmentRequest) TableName() string {
	return "enrollment_requests"
}
