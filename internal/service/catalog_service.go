package service

import (
	"formeo_backend/internal/model"
	"formeo_backend/internal/repository"
	"formeo_backend/internal/util"

	"gorm.io/gorm"
)

type CatalogService struct {
	CatalogRepo *repository.CatalogRepository
}

func NewCatalogService(catalogRepo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{CatalogRepo: catalogRepo}
}

func (s *CatalogService) CreateCourse(course *model.TrainingCourse) error {
	return s.CatalogRepo.Create(course)
}

func (s *CatalogService) GetCourse(id uint) (*model.TrainingCourse, error) {
	course, err := s.CatalogRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

// ListCourses returns the full catalog for staff, published courses only for
// everyone else.
func (s *CatalogService) ListCourses(includeUnpublished bool) ([]*model.TrainingCourse, error) {
	if includeUnpublished {
		return s.CatalogRepo.FindAll()
	}
	return s.CatalogRepo.FindPublished()
}

func (s *CatalogService) UpdateCourse(id uint, updated *model.TrainingCourse) error {
	course, err := s.GetCourse(id)
	if err != nil {
		return err
	}

	course.Title = updated.Title
	course.Description = updated.Description
	course.SessionTag = updated.SessionTag
	course.LevelTag = updated.LevelTag
	course.DurationH = updated.DurationH
	course.PriceCents = updated.PriceCents
	return s.CatalogRepo.Update(course)
}

func (s *CatalogService) PublishCourse(id uint, published bool) error {
	if _, err := s.GetCourse(id); err != nil {
		return err
	}
	return s.CatalogRepo.Publish(id, published)
}

func (s *CatalogService) DeleteCourse(id uint) error {
	if _, err := s.GetCourse(id); err != nil {
		return err
	}
	return s.CatalogRepo.Delete(id)
}
