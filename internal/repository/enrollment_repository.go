package repository

import (
	"time"

	"formeo_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(req *model.EnrollmentRequest) error {
	return r.DB.Create(req).Error
}

func (r *EnrollmentRepository) FindByID(id uint) (*model.EnrollmentRequest, error) {
	var req model.EnrollmentRequest
	err := r.DB.Preload("Course").Preload("User").First(&req, id).Error
	return &req, err
}

func (r *EnrollmentRepository) FindByUser(userID uint) ([]*model.EnrollmentRequest, error) {
	var reqs []*model.EnrollmentRequest
	err := r.DB.Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *EnrollmentRepository) FindByStatus(status model.EnrollmentStatus) ([]*model.EnrollmentRequest, error) {
	var reqs []*model.EnrollmentRequest
	err := r.DB.Preload("Course").Preload("User").
		Where("status = ?", status).
		Order("created_at").
		Find(&reqs).Error
	return reqs, err
}

func (r *EnrollmentRepository) FindPendingByUserAndCourse(userID, courseID uint) (*model.EnrollmentRequest, error) {
	var req model.EnrollmentRequest
	err := r.DB.Where("user_id = ? AND course_id = ? AND status = ?",
		userID, courseID, model.EnrollmentPending).
		First(&req).Error
	return &req, err
}

func (r *EnrollmentRepository) Decide(id uint, status model.EnrollmentStatus) error {
	now := time.Now()
	return r.DB.Model(&model.EnrollmentRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_at": &now,
		}).Error
}
