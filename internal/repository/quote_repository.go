package repository

import (
	"fmt"
	"time"

	"formeo_backend/internal/model"

	"gorm.io/gorm"
)

type QuoteRepository struct {
	DB *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{DB: db}
}

// Create assigns the next sequential number for the current year inside the
// insert transaction.
func (r *QuoteRepository) Create(quote *model.Quote) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		year := time.Now().Year()
		prefix := fmt.Sprintf("DEV-%d-", year)
		var count int64
		if err := tx.Model(&model.Quote{}).
			Where("number LIKE ?", prefix+"%").
			Count(&count).Error; err != nil {
			return err
		}
		quote.Number = fmt.Sprintf("%s%04d", prefix, count+1)
		return tx.Create(quote).Error
	})
}

func (r *QuoteRepository) FindByID(id string) (*model.Quote, error) {
	var quote model.Quote
	err := r.DB.First(&quote, "id = ?", id).Error
	return &quote, err
}

func (r *QuoteRepository) FindAll() ([]*model.Quote, error) {
	var quotes []*model.Quote
	err := r.DB.Order("created_at DESC").Find(&quotes).Error
	return quotes, err
}

func (r *QuoteRepository) Update(quote *model.Quote) error {
	return r.DB.Save(quote).Error
}

func (r *QuoteRepository) UpdateStatus(id string, status model.QuoteStatus) error {
	updates := map[string]interface{}{"status": status}
	now := time.Now()
	switch status {
	case model.QuoteSent:
		updates["sent_at"] = &now
	case model.QuoteAccepted, model.QuoteRefused:
		updates["decided_at"] = &now
	}
	return r.DB.Model(&model.Quote{}).Where("id = ?", id).Updates(updates).Error
}

func (r *QuoteRepository) SetAttachment(id, key string) error {
	return r.DB.Model(&model.Quote{}).Where("id = ?", id).
		Update("attachment_key", key).Error
}

// CreateContract numbers the contract like quotes, CTR-prefixed.
func (r *QuoteRepository) CreateContract(contract *model.Contract) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		year := time.Now().Year()
		prefix := fmt.Sprintf("CTR-%d-", year)
		var count int64
		if err := tx.Model(&model.Contract{}).
			Where("number LIKE ?", prefix+"%").
			Count(&count).Error; err != nil {
			return err
		}
		contract.Number = fmt.Sprintf("%s%04d", prefix, count+1)
		return tx.Create(contract).Error
	})
}

func (r *QuoteRepository) FindContractByID(id string) (*model.Contract, error) {
	var contract model.Contract
	err := r.DB.Preload("Quote").First(&contract, "id = ?", id).Error
	return &contract, err
}

func (r *QuoteRepository) FindContracts() ([]*model.Contract, error) {
	var contracts []*model.Contract
	err := r.DB.Preload("Quote").Order("created_at DESC").Find(&contracts).Error
	return contracts, err
}

func (r *QuoteRepository) UpdateContractStatus(id string, status model.ContractStatus) error {
	updates := map[string]interface{}{"status": status}
	now := time.Now()
	switch status {
	case model.ContractSent:
		updates["sent_at"] = &now
	case model.ContractSigned:
		updates["signed_at"] = &now
	}
	return r.DB.Model(&model.Contract{}).Where("id = ?", id).Updates(updates).Error
}

func (r *QuoteRepository) SetContractAttachment(id, key string) error {
	return r.DB.Model(&model.Contract{}).Where("id = ?", id).
		Update("attachment_key", key).Error
}
