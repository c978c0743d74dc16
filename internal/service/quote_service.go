package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"formeo_backend/internal/model"
	"formeo_backend/internal/repository"
	"formeo_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuoteService carries the commercial paperwork: numbered quotes, their
// lifecycle stamps and the contract issued once a quote is accepted.
type QuoteService struct {
	QuoteRepo *repository.QuoteRepository
	Storage   *StorageService
}

func NewQuoteService(quoteRepo *repository.QuoteRepository, storage *StorageService) *QuoteService {
	return &QuoteService{
		QuoteRepo: quoteRepo,
		Storage:   storage,
	}
}

func (s *QuoteService) CreateQuote(quote *model.Quote) error {
	quote.Status = model.QuoteDraft
	return s.QuoteRepo.Create(quote)
}

func (s *QuoteService) GetQuote(id string) (*model.Quote, error) {
	quote, err := s.QuoteRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuoteNotFound
	}
	return quote, err
}

func (s *QuoteService) ListQuotes() ([]*model.Quote, error) {
	return s.QuoteRepo.FindAll()
}

var quoteTransitions = map[model.QuoteStatus][]model.QuoteStatus{
	model.QuoteDraft: {model.QuoteSent},
	model.QuoteSent:  {model.QuoteAccepted, model.QuoteRefused},
}

// ChangeQuoteStatus enforces draft -> sent -> accepted|refused.
func (s *QuoteService) ChangeQuoteStatus(id string, status model.QuoteStatus) error {
	quote, err := s.GetQuote(id)
	if err != nil {
		return err
	}
	for _, next := range quoteTransitions[quote.Status] {
		if next == status {
			return s.QuoteRepo.UpdateStatus(id, status)
		}
	}
	return util.ErrInvalidStatusChange
}

// AttachQuoteDocument stores the signed or generated PDF and records its
// object key on the quote.
func (s *QuoteService) AttachQuoteDocument(ctx context.Context, id, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	quote, err := s.GetQuote(id)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("quotes/%s/%s%s", quote.ID, uuid.New().String(), filepath.Ext(filename))
	if _, err := s.Storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return "", err
	}
	if err := s.QuoteRepo.SetAttachment(id, key); err != nil {
		return "", err
	}
	return s.Storage.GetURL(key), nil
}

// IssueContract creates the contract for an accepted quote.
func (s *QuoteService) IssueContract(quoteID string) (*model.Contract, error) {
	quote, err := s.GetQuote(quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status != model.QuoteAccepted {
		return nil, util.ErrQuoteNotAccepted
	}

	contract := &model.Contract{
		QuoteID: quote.ID,
		Status:  model.ContractDraft,
	}
	if err := s.QuoteRepo.CreateContract(contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *QuoteService) GetContract(id string) (*model.Contract, error) {
	contract, err := s.QuoteRepo.FindContractByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuoteNotFound
	}
	return contract, err
}

func (s *QuoteService) ListContracts() ([]*model.Contract, error) {
	return s.QuoteRepo.FindContracts()
}

var contractTransitions = map[model.ContractStatus][]model.ContractStatus{
	model.ContractDraft: {model.ContractSent},
	model.ContractSent:  {model.ContractSigned},
}

func (s *QuoteService) ChangeContractStatus(id string, status model.ContractStatus) error {
	contract, err := s.GetContract(id)
	if err != nil {
		return err
	}
	for _, next := range contractTransitions[contract.Status] {
		if next == status {
			return s.QuoteRepo.UpdateContractStatus(id, status)
		}
	}
	return util.ErrInvalidStatusChange
}

func (s *QuoteService) AttachContractDocument(ctx context.Context, id, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	contract, err := s.GetContract(id)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("contracts/%s/%s%s", contract.ID, uuid.New().String(), filepath.Ext(filename))
	if _, err := s.Storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return "", err
	}
	if err := s.QuoteRepo.SetContractAttachment(id, key); err != nil {
		return "", err
	}
	return s.Storage.GetURL(key), nil
}
