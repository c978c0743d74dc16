package service

import (
	"formeo_backend/internal/model"
	"formeo_backend/internal/repository"
	"formeo_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CatalogRepo    *repository.CatalogRepository
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, catalogRepo *repository.CatalogRepository) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CatalogRepo:    catalogRepo,
	}
}

// Request files an enrollment request for a published course. One pending
// request per trainee and course.
func (s *EnrollmentService) Request(userID, courseID uint, message string) (*model.EnrollmentRequest, error) {
	course, err := s.CatalogRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, util.ErrCourseNotFound
	}

	_, err = s.EnrollmentRepo.FindPendingByUserAndCourse(userID, courseID)
	if err == nil {
		return nil, util.ErrAlreadyRequested
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	req := &model.EnrollmentRequest{
		CourseID: courseID,
		UserID:   userID,
		Message:  message,
		Status:   model.EnrollmentPending,
	}
	if err := s.EnrollmentRepo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *EnrollmentService) ListForUser(userID uint) ([]*model.EnrollmentRequest, error) {
	return s.EnrollmentRepo.FindByUser(userID)
}

func (s *EnrollmentService) ListByStatus(status model.EnrollmentStatus) ([]*model.EnrollmentRequest, error) {
	return s.EnrollmentRepo.FindByStatus(status)
}

// Decide accepts or refuses a pending request. Decisions are final.
func (s *EnrollmentService) Decide(id uint, accept bool) error {
	req, err := s.EnrollmentRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return util.ErrEnrollmentNotFound
	}
	if err != nil {
		return err
	}
	if req.Status != model.EnrollmentPending {
		return util.ErrEnrollmentDecided
	}

	status := model.EnrollmentRefused
	if accept {
		status = model.EnrollmentAccepted
	}
	return s.EnrollmentRepo.Decide(id, status)
}
