package model

import "time"

type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRefused  QuoteStatus = "refused"
)

// swagger:model Quote
type Quote struct {
	UUIDBase
	Number       string      `gorm:"size:30;uniqueIndex" json:"number"`
	CourseID     *uint       `gorm:"index" json:"courseId,omitempty"`
	EnrollmentID *uint       `gorm:"index" json:"enrollmentId,omitempty"`
	CustomerName string      `gorm:"size:150;not null" json:"customerName"`
	Company      string      `gorm:"size:150" json:"company"`
	AmountCents  int64       `gorm:"default:0" json:"amountCents"`
	Status       QuoteStatus `gorm:"size:20;default:'draft'" json:"status"`
	SentAt       *time.Time  `json:"sentAt,omitempty"`
	DecidedAt    *time.Time  `json:"decidedAt,omitempty"`
	// Object key of the uploaded PDF in the storage provider.
	AttachmentKey string `gorm:"size:255" json:"attachmentKey,omitempty"`
}

func (Quote) TableName() string {
	return "quotes"
}

type ContractStatus string

const (
	ContractDraft  ContractStatus = "draft"
	ContractSent   ContractStatus = "sent"
	ContractSigned ContractStatus = "signed"
)

// swagger:model Contract
type Contract struct {
	UUIDBase
	Number        string         `gorm:"size:30;uniqueIndex" json:"number"`
	QuoteID       string         `gorm:"size:36;index" json:"quoteId"`
	Status        ContractStatus `gorm:"size:20;default:'draft'" json:"status"`
	SentAt        *time.Time     `json:"sentAt,omitempty"`
	SignedAt      *time.Time     `json:"signedAt,omitempty"`
	AttachmentKey string         `gorm:"size:255" json:"attachmentKey,omitempty"`

	Quote *Quote `gorm:"foreignKey:QuoteID" json:"quote,omitempty"`
}

func (Contract) TableName() string {
	return "contracts"
}
