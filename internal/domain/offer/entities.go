package offer

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusDeclined Status = "DECLINED"
)

// Table: loan_offers. While PENDING, OfferedAmount is held out of the lender's wallet.
type Offer struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	OfferID       string          `gorm:"size:32;not null;uniqueIndex:ux_loan_offers_offer_id" json:"offer_id"`
	LoanRequestID uint64          `gorm:"not null;index:idx_loan_offers_request_status,priority:1" json:"-"`
	RequestID     string          `gorm:"size:32;not null" json:"request_id"`
	LenderID      string          `gorm:"size:32;not null;index:idx_loan_offers_lender" json:"lender_id"`
	OfferedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"offered_amount"`
	OfferedRate   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"offered_rate"`
	Message       string          `gorm:"type:text" json:"message"`
	Status        Status          `gorm:"size:16;not null;index:idx_loan_offers_request_status,priority:2" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Offer) TableName() string { return "loan_offers" }

func (o *Offer) IsPending() bool { return o.Status == StatusPending }
