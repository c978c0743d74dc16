package repository

import (
	"time"

	"formeo_backend/internal/model"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) Create(course *model.TrainingCourse) error {
	return r.DB.Create(course).Error
}

func (r *CatalogRepository) FindByID(id uint) (*model.TrainingCourse, error) {
	var course model.TrainingCourse
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CatalogRepository) FindAll() ([]*model.TrainingCourse, error) {
	var courses []*model.TrainingCourse
	err := r.DB.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CatalogRepository) FindPublished() ([]*model.TrainingCourse, error) {
	var courses []*model.TrainingCourse
	err := r.DB.Where("is_published = ?", true).Order("title").Find(&courses).Error
	return courses, err
}

func (r *CatalogRepository) Update(course *model.TrainingCourse) error {
	return r.DB.Save(course).Error
}

func (r *CatalogRepository) Publish(id uint, published bool) error {
	updates := map[string]interface{}{"is_published": published}
	if published {
		now := time.Now()
		updates["published_at"] = &now
	}
	return r.DB.Model(&model.TrainingCourse{}).Where("id = ?", id).Updates(updates).Error
}

func (r *CatalogRepository) Delete(id uint) error {
	return r.DB.Delete(&model.TrainingCourse{}, id).Error
}
