package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"formeo_backend/internal/scoring"

	"go.uber.org/zap"
)

type State string

const (
	StateLoading    State = "loading"
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateDone       State = "done"
)

type Mode string

const (
	ModeNormal     Mode = "normal"
	ModeCorrection Mode = "correction"
)

// DefaultDebounce is the quiescence window after the last edit before the
// draft is written. Rapid edits coalesce into a single write.
const DefaultDebounce = 600 * time.Millisecond

// Deps bundles the collaborators a session needs.
type Deps struct {
	Store    FormStore
	Drafts   DraftStore
	Engine   *scoring.Engine
	Debounce time.Duration
	Logger   *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Debounce <= 0 {
		d.Debounce = DefaultDebounce
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return d
}

// Session drives one trainee through one form: it loads the question set
// (full form or correction subset), stages edits into the draft store with a
// debounced autosave, validates, scores and hands the finished submission to
// the form store. All methods are safe for concurrent use; the state machine
// itself is single-writer under the session mutex.
type Session struct {
	mu sync.Mutex

	deps      Deps
	traineeID uint
	form      *Form
	mode      Mode
	prior     *Submission // correction mode only

	state       State
	questions   []PositionedQuestion
	answers     scoring.AnswerMap
	missing     []string
	lastSavedAt time.Time

	autosave *time.Timer // pending debounced write, nil when none
	inFlight bool
	closed   bool
}

// Snapshot is a point-in-time view safe to serialize to the caller.
type Snapshot struct {
	State       State                `json:"state"`
	Mode        Mode                 `json:"mode"`
	FormID      string               `json:"formId"`
	FormTitle   string               `json:"formTitle"`
	Questions   []PositionedQuestion `json:"questions"`
	Answers     scoring.AnswerMap    `json:"answers"`
	Missing     []string             `json:"missingRequired,omitempty"`
	LastSavedAt *time.Time           `json:"lastSavedAt,omitempty"`
}

// Open loads the form and enters idle state. With a correctionOf reference
// the prior submission and its verdicts shrink the question set to the wrong
// answers, pre-filled from the prior submission; otherwise a staged draft,
// if any, is merged into the initial answers.
func Open(ctx context.Context, deps Deps, traineeID uint, formID, correctionOf string) (*Session, error) {
	deps = deps.withDefaults()

	s := &Session{
		deps:      deps,
		traineeID: traineeID,
		state:     StateLoading,
		mode:      ModeNormal,
		answers:   scoring.AnswerMap{},
	}

	form, err := deps.Store.FetchForm(ctx, traineeID, formID)
	if err != nil {
		return nil, fmt.Errorf("fetch form %s: %w", formID, err)
	}
	s.form = form

	if correctionOf != "" {
		prior, record, err := deps.Store.FetchPriorSubmission(ctx, traineeID, correctionOf)
		if err != nil {
			return nil, fmt.Errorf("fetch prior submission %s: %w", correctionOf, err)
		}
		s.mode = ModeCorrection
		s.prior = prior
		s.questions = SelectForCorrection(form.Questions, record)
		// Prior answers are authoritative here, not the draft: a correction
		// is not a crash recovery.
		for _, q := range s.questions {
			if a, ok := prior.Answers[q.ID]; ok {
				s.answers[q.ID] = a
			}
		}
	} else {
		s.questions = Numbered(form.Questions)
		if staged, savedAt, ok := deps.Drafts.Load(ctx, s.draftKey()); ok {
			for id, a := range staged {
				s.answers[id] = a
			}
			s.lastSavedAt = savedAt
		}
	}

	s.state = StateIdle
	return s, nil
}

func (s *Session) draftKey() string {
	return fmt.Sprintf("%d:%s", s.traineeID, s.form.ID)
}

func (s *Session) Mode() Mode { return s.mode }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:     s.state,
		Mode:      s.mode,
		FormID:    s.form.ID,
		FormTitle: s.form.Title,
		Questions: s.questions,
		Answers:   s.answers.Clone(),
		Missing:   append([]string(nil), s.missing...),
	}
	if !s.lastSavedAt.IsZero() {
		t := s.lastSavedAt
		snap.LastSavedAt = &t
	}
	return snap
}

// EditAnswer records a value and reschedules the debounced autosave:
// cancel-old, schedule-new under the same lock, so edits are totally ordered
// and only the most recent answer state is ever written.
func (s *Session) EditAnswer(questionID string, value scoring.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.state != StateIdle {
		return ErrNotEditable
	}
	if !s.presented(questionID) {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}

	if value.IsEmpty() {
		delete(s.answers, questionID)
	} else {
		s.answers[questionID] = value
	}

	if s.autosave != nil {
		s.autosave.Stop()
	}
	s.autosave = time.AfterFunc(s.deps.Debounce, s.autosaveFire)
	return nil
}

func (s *Session) presented(questionID string) bool {
	for _, q := range s.questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

func (s *Session) autosaveFire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autosave = nil
	if s.closed || s.state != StateIdle {
		return
	}
	s.flushDraftLocked(context.Background())
}

// flushDraftLocked writes the draft best-effort. Storage trouble must never
// block the assessment flow, so errors are only logged.
func (s *Session) flushDraftLocked(ctx context.Context) {
	savedAt, err := s.deps.Drafts.Save(ctx, s.draftKey(), s.answers.Clone())
	if err != nil {
		s.deps.Logger.Debug("draft save failed",
			zap.String("form_id", s.form.ID),
			zap.Uint("trainee_id", s.traineeID),
			zap.Error(err))
		return
	}
	s.lastSavedAt = savedAt
}

// SaveDraftNow forces an immediate draft write, cancelling any pending
// autosave, and returns the save timestamp for "saved at" feedback.
func (s *Session) SaveDraftNow(ctx context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return time.Time{}, ErrSessionClosed
	}
	if s.autosave != nil {
		s.autosave.Stop()
		s.autosave = nil
	}
	savedAt, err := s.deps.Drafts.Save(ctx, s.draftKey(), s.answers.Clone())
	if err != nil {
		return time.Time{}, err
	}
	s.lastSavedAt = savedAt
	return savedAt, nil
}

// Submit validates the presented question set, scores it in normal mode and
// hands off to the form store. A rejected submission returns the session to
// idle with the answers intact; the draft was flushed before the attempt.
func (s *Session) Submit(ctx context.Context, comment string) (*Submission, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, ErrNotEditable
	}

	if res := Validate(s.questions, s.answers); !res.Valid {
		s.missing = res.Missing
		s.mu.Unlock()
		return nil, &ValidationError{Missing: res.Missing}
	}
	s.missing = nil

	if s.autosave != nil {
		s.autosave.Stop()
		s.autosave = nil
	}
	s.flushDraftLocked(ctx)

	s.state = StateSubmitting
	s.inFlight = true
	answers := s.answers.Clone()
	mode := s.mode
	formID := s.form.ID
	var priorID string
	if s.prior != nil {
		priorID = s.prior.ID
	}

	var score, maxScore *int
	if mode == ModeNormal {
		if r := s.deps.Engine.Score(s.form.Questions, answers); r.Possible > 0 {
			score, maxScore = &r.Earned, &r.Possible
		}
	}
	s.mu.Unlock()

	var sub *Submission
	var err error
	if mode == ModeCorrection {
		sub, err = s.deps.Store.ResubmitCorrection(ctx, s.traineeID, priorID, answers, comment)
	} else {
		sub, err = s.deps.Store.Submit(ctx, s.traineeID, formID, answers, comment, score, maxScore)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		// Recoverable: the caller may retry. Nothing was lost.
		s.state = StateIdle
		return nil, fmt.Errorf("form store rejected submission: %w", err)
	}

	s.deps.Drafts.Clear(ctx, s.draftKey())
	s.state = StateDone
	return sub, nil
}

// Close cancels any pending autosave so no stray write lands after the
// session context is torn down. An in-flight submit keeps running to
// completion; cancelling it is the form store's problem, not ours.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.autosave != nil {
		s.autosave.Stop()
		s.autosave = nil
	}
}
