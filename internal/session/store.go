package session

import (
	"context"
	"time"

	"formeo_backend/internal/scoring"
)

// Form is the assessment-facing view of a published form.
type Form struct {
	ID         string
	Title      string
	SessionTag string
	LevelTag   string
	ValidFrom  time.Time
	ValidUntil time.Time
	Questions  []scoring.Question
}

// Submission is a completed answer set as the form store accepted it.
// Score and MaxScore stay nil when nothing was scorable.
type Submission struct {
	ID           string
	FormID       string
	SubmittedAt  time.Time
	Answers      scoring.AnswerMap
	Comment      string
	Score        *int
	MaxScore     *int
	CorrectionOf string
}

// FormStore is the external collaborator owning forms and submissions. The
// session core drives it but never reaches into its persistence.
type FormStore interface {
	FetchActiveForms(ctx context.Context, traineeID uint) ([]Form, error)
	FetchForm(ctx context.Context, traineeID uint, formID string) (*Form, error)
	FetchPriorSubmission(ctx context.Context, traineeID uint, submissionID string) (*Submission, CorrectionRecord, error)
	Submit(ctx context.Context, traineeID uint, formID string, answers scoring.AnswerMap, comment string, score, maxScore *int) (*Submission, error)
	ResubmitCorrection(ctx context.Context, traineeID uint, priorSubmissionID string, answers scoring.AnswerMap, comment string) (*Submission, error)
}

// DraftStore stages in-progress answers for crash/reload recovery. Failures
// are absorbed by the implementations: Load answers "no draft" instead of
// erroring, Save errors are reported but never block the flow.
type DraftStore interface {
	Save(ctx context.Context, key string, answers scoring.AnswerMap) (time.Time, error)
	Load(ctx context.Context, key string) (scoring.AnswerMap, time.Time, bool)
	Clear(ctx context.Context, key string)
}
