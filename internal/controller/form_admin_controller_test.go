package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func setupStaffRouter(t *testing.T) (*gin.Engine, *service.FormService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	forms := service.NewFormService(repository.NewFormRepository(db), repository.NewSubmissionRepository(db))
	fc := NewFormAdminController(forms)
	staff := &util.Claims{UserID: 1, Role: model.Staff, Email: "s@example.com"}

	router := gin.New()
	grp := router.Group("/api/staff", asUser(staff))
	grp.POST("/forms", fc.CreateForm)
	grp.GET("/forms", fc.ListForms)
	grp.GET("/forms/:id", fc.GetForm)
	grp.PUT("/forms/:id", fc.UpdateForm)
	grp.DELETE("/forms/:id", fc.DeleteForm)
	grp.POST("/forms/:id/publish", fc.PublishForm)
	grp.POST("/submissions/:id/review", fc.ReviewSubmission)

	return router, forms
}

func staffDo(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFormAuthoringOverHTTP(t *testing.T) {
	router, _ := setupStaffRouter(t)

	payload := gin.H{
		"title":     "Bilan de session",
		"dateDebut": time.Now().Add(-time.Hour).Format(time.RFC3339),
		"dateFin":   time.Now().Add(time.Hour).Format(time.RFC3339),
		"questions": []gin.H{
			{"type": "radio", "label": "Q1", "required": true,
				"options": []string{"a", "b"}, "scoringEnabled": true,
				"points": 2, "correctAnswers": []string{"b"}},
		},
	}
	w := staffDo(t, router, http.MethodPost, "/api/staff/forms", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data model.Form `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	formID := resp.Data.ID
	assert.NotEmpty(t, formID)

	// Window ordering is rejected.
	bad := gin.H{
		"title":     "Fenêtre invalide",
		"dateDebut": payload["dateDebut"],
		"dateFin":   payload["dateDebut"],
		"questions": payload["questions"],
	}
	w = staffDo(t, router, http.MethodPost, "/api/staff/forms", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A question set is mandatory.
	w = staffDo(t, router, http.MethodPost, "/api/staff/forms", gin.H{
		"title":     "Sans questions",
		"dateDebut": time.Now().Format(time.RFC3339),
		"dateFin":   time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = staffDo(t, router, http.MethodPost,
		fmt.Sprintf("/api/staff/forms/%s/publish", formID), gin.H{"published": true})
	require.Equal(t, http.StatusOK, w.Code)

	// Published forms cannot be edited or deleted.
	w = staffDo(t, router, http.MethodPut, "/api/staff/forms/"+formID, payload)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = staffDo(t, router, http.MethodDelete, "/api/staff/forms/"+formID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReviewOverHTTP(t *testing.T) {
	router, forms := setupStaffRouter(t)

	form := &model.Form{
		Title:      "Bilan",
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(time.Hour),
		Questions:  []model.Question{{Type: "text", Label: "Q", Required: true}},
	}
	require.NoError(t, forms.CreateForm(form))

	w := staffDo(t, router, http.MethodPost, "/api/staff/submissions/nope/review",
		gin.H{"verdicts": []gin.H{{"questionId": form.Questions[0].ID, "correcte": false}}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
