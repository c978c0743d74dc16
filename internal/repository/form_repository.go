package repository

import (
	"time"

	"formeo_backend/internal/model"

	"gorm.io/gorm"
)

type FormRepository struct {
	DB *gorm.DB
}

func NewFormRepository(db *gorm.DB) *FormRepository {
	return &FormRepository{DB: db}
}

func (r *FormRepository) Create(form *model.Form) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(form).Error; err != nil {
			return err
		}
		for i := range form.Questions {
			q := &form.Questions[i]
			q.FormID = form.ID
			if err := tx.Create(q).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID loads the form with its questions ordered by authored position.
func (r *FormRepository) FindByID(id string) (*model.Form, error) {
	var form model.Form
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).First(&form, "id = ?", id).Error
	return &form, err
}

func (r *FormRepository) FindAll() ([]*model.Form, error) {
	var forms []*model.Form
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("created_at DESC").Find(&forms).Error
	return forms, err
}

// FindActiveAt returns published forms whose validity window contains t.
func (r *FormRepository) FindActiveAt(t time.Time) ([]*model.Form, error) {
	var forms []*model.Form
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).
		Where("is_published = ? AND valid_from <= ? AND valid_until >= ?", true, t, t).
		Order("valid_until").
		Find(&forms).Error
	return forms, err
}

func (r *FormRepository) Update(form *model.Form) error {
	return r.DB.Save(form).Error
}

// ReplaceQuestions swaps the full question list of a form in one transaction.
func (r *FormRepository) ReplaceQuestions(formID string, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", formID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			q := &questions[i]
			q.FormID = formID
			q.Position = i
			if err := tx.Create(q).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *FormRepository) Publish(id string, published bool) error {
	updates := map[string]interface{}{"is_published": published}
	if published {
		now := time.Now()
		updates["published_at"] = &now
	}
	return r.DB.Model(&model.Form{}).Where("id = ?", id).Updates(updates).Error
}

func (r *FormRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Form{}, "id = ?", id).Error
	})
}
