package repository

import (
	"formeo_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(sub *model.Submission) error {
	return r.DB.Create(sub).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.First(&sub, "id = ?", id).Error
	return &sub, err
}

// FindLatestByUserAndForm returns the most recent submission a trainee made
// for a form, corrections included.
func (r *SubmissionRepository) FindLatestByUserAndForm(userID uint, formID string) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Where("user_id = ? AND form_id = ?", userID, formID).
		Order("submitted_at DESC").
		First(&sub).Error
	return &sub, err
}

func (r *SubmissionRepository) FindByForm(formID string) ([]*model.Submission, error) {
	var subs []*model.Submission
	err := r.DB.Preload("User").
		Where("form_id = ?", formID).
		Order("submitted_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) FindByUser(userID uint) ([]*model.Submission, error) {
	var subs []*model.Submission
	err := r.DB.Preload("Form").
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&subs).Error
	return subs, err
}

// FindReviewedForUser lists reviewed submissions of a trainee that have not
// been superseded by a correction resubmission yet.
func (r *SubmissionRepository) FindReviewedForUser(userID uint) ([]*model.Submission, error) {
	var subs []*model.Submission
	err := r.DB.Preload("Form").
		Where("user_id = ? AND status = ?", userID, model.SubmissionReviewed).
		Where("id NOT IN (?)", r.DB.Model(&model.Submission{}).
			Select("correction_of").
			Where("user_id = ? AND correction_of IS NOT NULL", userID)).
		Order("submitted_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) UpdateStatus(id string, status model.SubmissionStatus) error {
	return r.DB.Model(&model.Submission{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

// SaveReview replaces the correction entries of a submission and marks it
// reviewed in one transaction.
func (r *SubmissionRepository) SaveReview(submissionID string, entries []model.CorrectionEntry) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", submissionID).
			Delete(&model.CorrectionEntry{}).Error; err != nil {
			return err
		}
		for i := range entries {
			e := &entries[i]
			e.SubmissionID = submissionID
			if err := tx.Create(e).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Submission{}).
			Where("id = ?", submissionID).
			Update("status", model.SubmissionReviewed).
			Error
	})
}

func (r *SubmissionRepository) FindCorrectionEntries(submissionID string) ([]*model.CorrectionEntry, error) {
	var entries []*model.CorrectionEntry
	err := r.DB.Where("submission_id = ?", submissionID).Find(&entries).Error
	return entries, err
}
