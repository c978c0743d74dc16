package service

import (
	"testing"

	"formeo_backend/internal/model"
	"formeo_backend/internal/repository"
	"formeo_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCatalogService(t *testing.T) (*CatalogService, *EnrollmentService) {
	db := setupTestDB(t)
	catalogRepo := repository.NewCatalogRepository(db)
	return NewCatalogService(catalogRepo),
		NewEnrollmentService(repository.NewEnrollmentRepository(db), catalogRepo)
}

func TestCatalogPublishVisibility(t *testing.T) {
	svc, _ := setupCatalogService(t)

	course := &model.TrainingCourse{Title: "Géométrie appliquée", DurationH: 14, PriceCents: 120000}
	require.NoError(t, svc.CreateCourse(course))

	public, err := svc.ListCourses(false)
	require.NoError(t, err)
	assert.Empty(t, public)

	all, err := svc.ListCourses(true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.PublishCourse(course.ID, true))
	public, err = svc.ListCourses(false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.NotNil(t, public[0].PublishedAt)
}

func TestEnrollmentFlow(t *testing.T) {
	catalog, enrollment := setupCatalogService(t)

	course := &model.TrainingCourse{Title: "Topographie niveau 1"}
	require.NoError(t, catalog.CreateCourse(course))

	// Unpublished courses cannot be requested.
	_, err := enrollment.Request(5, course.ID, "")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	require.NoError(t, catalog.PublishCourse(course.ID, true))

	req, err := enrollment.Request(5, course.ID, "disponible en mai")
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentPending, req.Status)

	_, err = enrollment.Request(5, course.ID, "")
	assert.ErrorIs(t, err, util.ErrAlreadyRequested)

	require.NoError(t, enrollment.Decide(req.ID, true))
	assert.ErrorIs(t, enrollment.Decide(req.ID, false), util.ErrEnrollmentDecided)

	mine, err := enrollment.ListForUser(5)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, model.EnrollmentAccepted, mine[0].Status)
	assert.NotNil(t, mine[0].DecidedAt)

	// A decided request frees the trainee to ask again.
	_, err = enrollment.Request(5, course.ID, "seconde session")
	require.NoError(t, err)
}
