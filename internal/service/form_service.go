package service

import (
	"context"
	"encoding/json"
	"time"

	"formeo_backend/internal/model"
	"formeo_backend/internal/repository"
	"formeo_backend/internal/scoring"
	"formeo_backend/internal/session"
	"formeo_backend/internal/util"

	"gorm.io/gorm"
)

// FormService owns forms and submissions. It backs the assessment session
// core as its form store and carries the staff-side authoring and review
// operations.
type FormService struct {
	FormRepo       *repository.FormRepository
	SubmissionRepo *repository.SubmissionRepository
}

func NewFormService(formRepo *repository.FormRepository, subRepo *repository.SubmissionRepository) *FormService {
	return &FormService{
		FormRepo:       formRepo,
		SubmissionRepo: subRepo,
	}
}

func toSessionForm(f *model.Form) *session.Form {
	qs := make([]scoring.Question, 0, len(f.Questions))
	for i := range f.Questions {
		qs = append(qs, f.Questions[i].ToScoring())
	}
	return &session.Form{
		ID:         f.ID,
		Title:      f.Title,
		SessionTag: f.SessionTag,
		LevelTag:   f.LevelTag,
		ValidFrom:  f.ValidFrom,
		ValidUntil: f.ValidUntil,
		Questions:  qs,
	}
}

func toSessionSubmission(s *model.Submission) (*session.Submission, error) {
	var answers scoring.AnswerMap
	if len(s.Answers) > 0 {
		if err := json.Unmarshal(s.Answers, &answers); err != nil {
			return nil, err
		}
	}
	out := &session.Submission{
		ID:          s.ID,
		FormID:      s.FormID,
		SubmittedAt: s.SubmittedAt,
		Answers:     answers,
		Comment:     s.Comment,
		Score:       s.Score,
		MaxScore:    s.MaxScore,
	}
	if s.CorrectionOf != nil {
		out.CorrectionOf = *s.CorrectionOf
	}
	return out, nil
}

// FetchActiveForms lists the published forms currently open for submission.
func (s *FormService) FetchActiveForms(ctx context.Context, traineeID uint) ([]session.Form, error) {
	forms, err := s.FormRepo.FindActiveAt(time.Now())
	if err != nil {
		return nil, err
	}
	out := make([]session.Form, 0, len(forms))
	for _, f := range forms {
		out = append(out, *toSessionForm(f))
	}
	return out, nil
}

func (s *FormService) FetchForm(ctx context.Context, traineeID uint, formID string) (*session.Form, error) {
	form, err := s.FormRepo.FindByID(formID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrFormNotFound
	}
	if err != nil {
		return nil, err
	}
	if !form.ActiveAt(time.Now()) {
		return nil, util.ErrFormNotPublished
	}
	return toSessionForm(form), nil
}

// FetchPriorSubmission loads a reviewed submission of the trainee together
// with the grader's per-question verdicts.
func (s *FormService) FetchPriorSubmission(ctx context.Context, traineeID uint, submissionID string) (*session.Submission, session.CorrectionRecord, error) {
	sub, err := s.SubmissionRepo.FindByID(submissionID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if sub.UserID != traineeID {
		return nil, nil, util.ErrPermissionDenied
	}
	if sub.Status != model.SubmissionReviewed {
		return nil, nil, util.ErrNotReviewed
	}

	entries, err := s.SubmissionRepo.FindCorrectionEntries(submissionID)
	if err != nil {
		return nil, nil, err
	}
	record := session.CorrectionRecord{}
	for _, e := range entries {
		record[e.QuestionID] = session.CorrectionEntry{
			Correcte: e.Correcte,
			Comment:  e.Comment,
		}
	}

	prior, err := toSessionSubmission(sub)
	if err != nil {
		return nil, nil, err
	}
	return prior, record, nil
}

func (s *FormService) Submit(ctx context.Context, traineeID uint, formID string, answers scoring.AnswerMap, comment string, score, maxScore *int) (*session.Submission, error) {
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	sub := &model.Submission{
		FormID:      formID,
		UserID:      traineeID,
		SubmittedAt: time.Now(),
		Answers:     raw,
		Comment:     comment,
		Score:       score,
		MaxScore:    maxScore,
		Status:      model.SubmissionPending,
	}
	if err := s.SubmissionRepo.Create(sub); err != nil {
		return nil, err
	}
	return toSessionSubmission(sub)
}

// ResubmitCorrection stores the reworked answers as a fresh submission linked
// to the reviewed one. No score is computed; the grader rescores by hand.
func (s *FormService) ResubmitCorrection(ctx context.Context, traineeID uint, priorSubmissionID string, answers scoring.AnswerMap, comment string) (*session.Submission, error) {
	prior, err := s.SubmissionRepo.FindByID(priorSubmissionID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	if prior.UserID != traineeID {
		return nil, util.ErrPermissionDenied
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	sub := &model.Submission{
		FormID:       prior.FormID,
		UserID:       traineeID,
		SubmittedAt:  time.Now(),
		Answers:      raw,
		Comment:      comment,
		Status:       model.SubmissionPending,
		CorrectionOf: &prior.ID,
	}
	if err := s.SubmissionRepo.Create(sub); err != nil {
		return nil, err
	}
	return toSessionSubmission(sub)
}

// PendingCorrection summarizes one reviewed submission awaiting a correction
// pass from its trainee.
type PendingCorrection struct {
	SubmissionID string     `json:"submissionId"`
	FormID       string     `json:"formId"`
	FormTitle    string     `json:"formTitle"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	Score        *int       `json:"score,omitempty"`
	MaxScore     *int       `json:"maxScore,omitempty"`
	WrongCount   int        `json:"wrongCount"`
}

// PendingCorrections lists the trainee's reviewed submissions that still have
// incorrect answers and no correction resubmission yet.
func (s *FormService) PendingCorrections(ctx context.Context, traineeID uint) ([]PendingCorrection, error) {
	subs, err := s.SubmissionRepo.FindReviewedForUser(traineeID)
	if err != nil {
		return nil, err
	}

	out := make([]PendingCorrection, 0, len(subs))
	for _, sub := range subs {
		entries, err := s.SubmissionRepo.FindCorrectionEntries(sub.ID)
		if err != nil {
			return nil, err
		}
		wrong := 0
		for _, e := range entries {
			if !e.Correcte {
				wrong++
			}
		}
		if wrong == 0 {
			continue
		}
		pc := PendingCorrection{
			SubmissionID: sub.ID,
			FormID:       sub.FormID,
			SubmittedAt:  sub.SubmittedAt,
			Score:        sub.Score,
			MaxScore:     sub.MaxScore,
			WrongCount:   wrong,
		}
		if sub.Form != nil {
			pc.FormTitle = sub.Form.Title
		}
		out = append(out, pc)
	}
	return out, nil
}

// Staff-side operations.

func (s *FormService) CreateForm(form *model.Form) error {
	for i := range form.Questions {
		form.Questions[i].Position = i
	}
	return s.FormRepo.Create(form)
}

func (s *FormService) GetForm(id string) (*model.Form, error) {
	form, err := s.FormRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrFormNotFound
	}
	return form, err
}

func (s *FormService) ListForms() ([]*model.Form, error) {
	return s.FormRepo.FindAll()
}

// UpdateForm rewrites metadata and question set. Published forms are locked;
// unpublish first.
func (s *FormService) UpdateForm(id string, updated *model.Form) error {
	form, err := s.FormRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return util.ErrFormNotFound
	}
	if err != nil {
		return err
	}
	if form.IsPublished {
		return util.ErrFormPublished
	}

	form.Title = updated.Title
	form.Description = updated.Description
	form.SessionTag = updated.SessionTag
	form.LevelTag = updated.LevelTag
	form.ValidFrom = updated.ValidFrom
	form.ValidUntil = updated.ValidUntil
	form.Questions = nil
	if err := s.FormRepo.Update(form); err != nil {
		return err
	}
	return s.FormRepo.ReplaceQuestions(id, updated.Questions)
}

func (s *FormService) PublishForm(id string, published bool) error {
	if _, err := s.GetForm(id); err != nil {
		return err
	}
	return s.FormRepo.Publish(id, published)
}

func (s *FormService) DeleteForm(id string) error {
	form, err := s.FormRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return util.ErrFormNotFound
	}
	if err != nil {
		return err
	}
	if form.IsPublished {
		return util.ErrFormPublished
	}
	return s.FormRepo.Delete(id)
}

func (s *FormService) ListSubmissions(formID string) ([]*model.Submission, error) {
	return s.SubmissionRepo.FindByForm(formID)
}

func (s *FormService) GetSubmission(id string) (*model.Submission, []*model.CorrectionEntry, error) {
	sub, err := s.SubmissionRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.SubmissionRepo.FindCorrectionEntries(id)
	if err != nil {
		return nil, nil, err
	}
	return sub, entries, nil
}

// ReviewSubmission records the grader's verdicts and marks the submission
// reviewed. At least one incorrect verdict is required for a correction cycle
// to exist; an all-correct review is still stored.
func (s *FormService) ReviewSubmission(submissionID string, entries []model.CorrectionEntry) error {
	if _, err := s.SubmissionRepo.FindByID(submissionID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrSubmissionNotFound
		}
		return err
	}
	return s.SubmissionRepo.SaveReview(submissionID, entries)
}
