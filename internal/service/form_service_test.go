package service

import (
	"context"
	"testing"
	"time"

	"formeo_backend/internal/model"
	"formeo_backend/internal/repository"
	"formeo_backend/internal/scoring"
	"formeo_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func setupFormService(t *testing.T) (*FormService, *gorm.DB) {
	db := setupTestDB(t)
	return NewFormService(repository.NewFormRepository(db), repository.NewSubmissionRepository(db)), db
}

func createPublishedForm(t *testing.T, svc *FormService) *model.Form {
	t.Helper()
	form := &model.Form{
		Title:      "Bilan session printemps",
		SessionTag: "2026-printemps",
		LevelTag:   "intermediaire",
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(24 * time.Hour),
		Questions: []model.Question{
			{
				Type:           "radio",
				Label:          "Un angle droit mesure",
				Required:       true,
				Options:        []string{"45 degrés", "90 degrés"},
				ScoringEnabled: true,
				Points:         2,
				CorrectAnswers: []string{"90 degrés"},
			},
			{
				Type:           "text",
				Label:          "Capitale de la France",
				Required:       true,
				ScoringEnabled: true,
				Points:         1,
				CorrectAnswers: []string{"Paris"},
			},
			{
				Type:  "textarea",
				Label: "Remarques",
			},
		},
	}
	require.NoError(t, svc.CreateForm(form))
	require.NoError(t, svc.PublishForm(form.ID, true))
	return form
}

func TestFetchActiveForms(t *testing.T) {
	svc, _ := setupFormService(t)
	form := createPublishedForm(t, svc)

	// An expired form stays out of the active list.
	expired := &model.Form{
		Title:      "Bilan clos",
		ValidFrom:  time.Now().Add(-48 * time.Hour),
		ValidUntil: time.Now().Add(-24 * time.Hour),
		Questions:  []model.Question{{Type: "text", Label: "Q"}},
	}
	require.NoError(t, svc.CreateForm(expired))
	require.NoError(t, svc.PublishForm(expired.ID, true))

	forms, err := svc.FetchActiveForms(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, form.ID, forms[0].ID)
	assert.Len(t, forms[0].Questions, 3)
}

func TestFetchFormUnpublished(t *testing.T) {
	svc, _ := setupFormService(t)
	form := createPublishedForm(t, svc)
	require.NoError(t, svc.PublishForm(form.ID, false))

	_, err := svc.FetchForm(context.Background(), 1, form.ID)
	assert.Error(t, err)
}

func TestSubmitPersistsScore(t *testing.T) {
	svc, _ := setupFormService(t)
	form := createPublishedForm(t, svc)

	answers := scoring.AnswerMap{
		form.Questions[0].ID: scoring.String("90 degrés"),
		form.Questions[1].ID: scoring.String("paris"),
	}
	score, max := 3, 3
	sub, err := svc.Submit(context.Background(), 7, form.ID, answers, "ras", &score, &max)
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, 3, *sub.Score)
	assert.Equal(t, 3, *sub.MaxScore)
	assert.Len(t, sub.Answers, 2)

	stored, _, err := svc.GetSubmission(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionPending, stored.Status)
	assert.Equal(t, uint(7), stored.UserID)
}

func TestReviewAndCorrectionCycle(t *testing.T) {
	svc, _ := setupFormService(t)
	form := createPublishedForm(t, svc)
	ctx := context.Background()

	answers := scoring.AnswerMap{
		form.Questions[0].ID: scoring.String("90 degrés"),
		form.Questions[1].ID: scoring.String("Lyon"),
	}
	score, max := 2, 3
	sub, err := svc.Submit(ctx, 7, form.ID, answers, "", &score, &max)
	require.NoError(t, err)

	// Before review the submission is not available as a correction base.
	_, _, err = svc.FetchPriorSubmission(ctx, 7, sub.ID)
	assert.Error(t, err)

	err = svc.ReviewSubmission(sub.ID, []model.CorrectionEntry{
		{QuestionID: form.Questions[0].ID, Correcte: true},
		{QuestionID: form.Questions[1].ID, Correcte: false, Comment: "Relire le cours"},
	})
	require.NoError(t, err)

	pending, err := svc.PendingCorrections(ctx, 7)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, sub.ID, pending[0].SubmissionID)
	assert.Equal(t, 1, pending[0].WrongCount)

	prior, record, err := svc.FetchPriorSubmission(ctx, 7, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lyon", prior.Answers[form.Questions[1].ID].Str)
	assert.False(t, record[form.Questions[1].ID].Correcte)
	assert.True(t, record[form.Questions[0].ID].Correcte)

	// Another trainee cannot read it.
	_, _, err = svc.FetchPriorSubmission(ctx, 8, sub.ID)
	assert.Error(t, err)

	corrected, err := svc.ResubmitCorrection(ctx, 7, sub.ID, scoring.AnswerMap{
		form.Questions[1].ID: scoring.String("Paris"),
	}, "corrigé")
	require.NoError(t, err)
	assert.Equal(t, sub.ID, corrected.CorrectionOf)
	assert.Nil(t, corrected.Score)

	// The resubmission removes the item from the pending list.
	pending, err = svc.PendingCorrections(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPublishedFormLocked(t *testing.T) {
	svc, _ := setupFormService(t)
	form := createPublishedForm(t, svc)

	err := svc.UpdateForm(form.ID, &model.Form{Title: "Nouveau titre"})
	assert.Error(t, err)

	err = svc.DeleteForm(form.ID)
	assert.Error(t, err)

	require.NoError(t, svc.PublishForm(form.ID, false))
	err = svc.UpdateForm(form.ID, &model.Form{
		Title:      "Nouveau titre",
		ValidFrom:  form.ValidFrom,
		ValidUntil: form.ValidUntil,
		Questions:  []model.Question{{Type: "text", Label: "Seule question"}},
	})
	require.NoError(t, err)

	reloaded, err := svc.GetForm(form.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nouveau titre", reloaded.Title)
	require.Len(t, reloaded.Questions, 1)
	assert.Equal(t, "Seule question", reloaded.Questions[0].Label)
}
