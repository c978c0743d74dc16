package service

import (
	"context"
	"time"

	"formeo_backend/internal/config"
	"formeo_backend/internal/draft"
	"formeo_backend/internal/scoring"
	"formeo_backend/internal/session"
	"formeo_backend/pkg/logger"
	"formeo_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
)

// AssessmentService fronts the quiz session core for the HTTP layer. It owns
// one session manager wired with the fuzzy matcher, the debounce window and
// the Redis draft staging configured for the deployment.
type AssessmentService struct {
	Manager *session.Manager
	Forms   *FormService
}

func NewAssessmentService(forms *FormService, rdb *redis.Client, cfg *config.Config) *AssessmentService {
	matcher := scoring.NewMatcher(scoring.WithMaxLengthDiff(cfg.Assessment.FuzzyMaxLengthDiff))
	engine := scoring.NewEngine(matcher)

	var drafts session.DraftStore
	if rdb != nil {
		drafts = draft.NewRedisStore(rdb, time.Duration(cfg.Assessment.DraftTTLHours)*time.Hour)
	} else {
		drafts = draft.NewMemoryStore()
	}

	deps := session.Deps{
		Store:    forms,
		Drafts:   drafts,
		Engine:   engine,
		Debounce: time.Duration(cfg.Assessment.AutosaveDebounceMs) * time.Millisecond,
		Logger:   logger.Log,
	}

	return &AssessmentService{
		Manager: session.NewManager(deps),
		Forms:   forms,
	}
}

func (s *AssessmentService) ActiveForms(ctx context.Context, traineeID uint) ([]session.Form, error) {
	return s.Forms.FetchActiveForms(ctx, traineeID)
}

func (s *AssessmentService) OpenSession(ctx context.Context, traineeID uint, formID, correctionOf string) (session.Snapshot, error) {
	sess, err := s.Manager.Acquire(ctx, traineeID, formID, correctionOf)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *AssessmentService) EditAnswer(ctx context.Context, traineeID uint, formID, correctionOf, questionID string, value scoring.Answer) (session.Snapshot, error) {
	sess, err := s.Manager.Acquire(ctx, traineeID, formID, correctionOf)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.EditAnswer(questionID, value); err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *AssessmentService) SaveDraft(ctx context.Context, traineeID uint, formID, correctionOf string) (time.Time, error) {
	sess, err := s.Manager.Acquire(ctx, traineeID, formID, correctionOf)
	if err != nil {
		return time.Time{}, err
	}
	return sess.SaveDraftNow(ctx)
}

// Submit hands the session's answers to the form store and releases the
// session on success so a later visit starts fresh.
func (s *AssessmentService) Submit(ctx context.Context, traineeID uint, formID, correctionOf, comment string) (*session.Submission, error) {
	sess, err := s.Manager.Acquire(ctx, traineeID, formID, correctionOf)
	if err != nil {
		return nil, err
	}
	sub, err := sess.Submit(ctx, comment)
	if err != nil {
		return nil, err
	}
	monitoring.SubmissionCounter.WithLabelValues(string(sess.Mode())).Inc()
	s.Manager.Release(traineeID, formID)
	return sub, nil
}

func (s *AssessmentService) PendingCorrections(ctx context.Context, traineeID uint) ([]PendingCorrection, error) {
	return s.Forms.PendingCorrections(ctx, traineeID)
}
