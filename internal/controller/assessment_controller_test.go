package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"formeo_backend/internal/config"
	"formeo_backend/internal/model"
	"formeo_backend/internal/repository"
	"formeo_backend/internal/service"
	"formeo_backend/internal/util"
	"formeo_backend/pkg/database"
	"formeo_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	forms  *service.FormService
}

func asUser(claims *util.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", claims)
		c.Next()
	}
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	forms := service.NewFormService(repository.NewFormRepository(db), repository.NewSubmissionRepository(db))
	cfg := &config.Config{}
	cfg.Assessment.FuzzyMaxLengthDiff = 5
	cfg.Assessment.AutosaveDebounceMs = 10
	assessment := service.NewAssessmentService(forms, nil, cfg)

	ac := NewAssessmentController(assessment)
	trainee := &util.Claims{UserID: 42, Role: model.Trainee, Email: "t@example.com"}

	router := gin.New()
	api := router.Group("/api", asUser(trainee))
	api.GET("/forms", ac.ListActiveForms)
	api.GET("/forms/:id/session", ac.OpenSession)
	api.PUT("/forms/:id/session/answers", ac.EditAnswer)
	api.POST("/forms/:id/session/draft", ac.SaveDraft)
	api.POST("/forms/:id/session/submit", ac.Submit)
	api.GET("/my/corrections", ac.MyCorrections)

	return &testEnv{router: router, db: db, forms: forms}
}

func (e *testEnv) seedForm(t *testing.T) *model.Form {
	t.Helper()
	form := &model.Form{
		Title:      "Bilan",
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(time.Hour),
		Questions: []model.Question{
			{Type: "radio", Label: "Angle droit", Required: true,
				Options: []string{"45 degrés", "90 degrés"}, ScoringEnabled: true,
				Points: 2, CorrectAnswers: []string{"90 degrés"}},
			{Type: "text", Label: "Capitale", Required: true,
				ScoringEnabled: true, Points: 1, CorrectAnswers: []string{"Paris"}},
		},
	}
	require.NoError(t, e.forms.CreateForm(form))
	require.NoError(t, e.forms.PublishForm(form.ID, true))
	return form
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestSessionOverHTTP(t *testing.T) {
	env := setupEnv(t)
	form := env.seedForm(t)

	w := env.do(t, http.MethodGet, "/api/forms", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/forms/%s/session", form.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := dataOf(t, w)
	assert.Equal(t, "idle", snap["state"])
	assert.Equal(t, "normal", snap["mode"])

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/forms/%s/session/answers", form.ID),
		gin.H{"questionId": form.Questions[0].ID, "value": "90 degrés"})
	require.Equal(t, http.StatusOK, w.Code)

	// An answer for a question outside the presented set is rejected.
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/forms/%s/session/answers", form.ID),
		gin.H{"questionId": "unknown-id", "value": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Required question still missing.
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/forms/%s/session/submit", form.ID),
		gin.H{"comment": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/forms/%s/session/answers", form.ID),
		gin.H{"questionId": form.Questions[1].ID, "value": "Paris"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/forms/%s/session/draft", form.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, dataOf(t, w)["savedAt"])

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/forms/%s/session/submit", form.ID),
		gin.H{"comment": "terminé"})
	require.Equal(t, http.StatusOK, w.Code)
	sub := dataOf(t, w)
	assert.EqualValues(t, 3, sub["Score"])
	assert.EqualValues(t, 3, sub["MaxScore"])
}

func TestOpenUnknownFormOverHTTP(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodGet, "/api/forms/nope/session", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCorrectionOverHTTP(t *testing.T) {
	env := setupEnv(t)
	form := env.seedForm(t)

	env.do(t, http.MethodGet, fmt.Sprintf("/api/forms/%s/session", form.ID), nil)
	env.do(t, http.MethodPut, fmt.Sprintf("/api/forms/%s/session/answers", form.ID),
		gin.H{"questionId": form.Questions[0].ID, "value": "90 degrés"})
	env.do(t, http.MethodPut, fmt.Sprintf("/api/forms/%s/session/answers", form.ID),
		gin.H{"questionId": form.Questions[1].ID, "value": "Lyon"})
	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/forms/%s/session/submit", form.ID), gin.H{})
	require.Equal(t, http.StatusOK, w.Code)
	subID := dataOf(t, w)["ID"].(string)

	require.NoError(t, env.forms.ReviewSubmission(subID, []model.CorrectionEntry{
		{QuestionID: form.Questions[0].ID, Correcte: true},
		{QuestionID: form.Questions[1].ID, Correcte: false, Comment: "faux"},
	}))

	w = env.do(t, http.MethodGet, "/api/my/corrections", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet,
		fmt.Sprintf("/api/forms/%s/session?correctionOf=%s", form.ID, subID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := dataOf(t, w)
	assert.Equal(t, "correction", snap["mode"])
	questions := snap["questions"].([]interface{})
	require.Len(t, questions, 1)
}
