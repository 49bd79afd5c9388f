package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusFunded   Status = "FUNDED"
	StatusRepaid   Status = "REPAID"
	StatusRejected Status = "REJECTED"
)

// Table: loan_requests
type Request struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	RequestID       string          `gorm:"size:32;not null;uniqueIndex:ux_loan_requests_request_id" json:"request_id"`
	BorrowerID      string          `gorm:"size:32;not null;index:idx_loan_requests_borrower_status,priority:1" json:"borrower_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	InterestRate    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	TermValue       int             `gorm:"not null" json:"term_value"`
	TermUnit        TermUnit        `gorm:"size:8;not null" json:"term_unit"`
	Purpose         string          `gorm:"type:text" json:"purpose"`
	Status          Status          `gorm:"size:16;not null;index:idx_loan_requests_borrower_status,priority:2;index:idx_loan_requests_status" json:"status"`
	StatusUpdatedAt time.Time       `json:"status_updated_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Request) TableName() string { return "loan_requests" }

func (r *Request) Term() Term { return Term{Value: r.TermValue, Unit: r.TermUnit} }

func (r *Request) IsPending() bool { return r.Status == StatusPending }

func (r *Request) SetStatus(s Status, at time.Time) {
	r.Status = s
	r.StatusUpdatedAt = at
}

type ActiveStatus string

const (
	ActiveStatusActive    ActiveStatus = "ACTIVE"
	ActiveStatusPaid      ActiveStatus = "PAID"
	ActiveStatusDefaulted ActiveStatus = "DEFAULTED"
)

// Table: active_loans. At most one row per loan request.
type ActiveLoan struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string          `gorm:"size:32;not null;uniqueIndex:ux_active_loans_loan_id" json:"loan_id"`
	LoanRequestID   uint64          `gorm:"not null;uniqueIndex:ux_active_loans_loan_request_id" json:"-"`
	RequestID       string          `gorm:"size:32;not null" json:"request_id"`
	OfferID         string          `gorm:"size:32;not null" json:"offer_id"`
	LenderID        string          `gorm:"size:32;not null;index:idx_active_loans_lender" json:"lender_id"`
	BorrowerID      string          `gorm:"size:32;not null;index:idx_active_loans_borrower_status,priority:1" json:"borrower_id"`
	PrincipalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"principal_amount"`
	InterestRate    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	TotalRepayment  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_repayment"`
	StartDate       time.Time       `gorm:"not null" json:"start_date"`
	DueDate         time.Time       `gorm:"not null;index:idx_active_loans_due_date" json:"due_date"`
	Status          ActiveStatus    `gorm:"size:16;not null;index:idx_active_loans_borrower_status,priority:2" json:"status"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ActiveLoan) TableName() string { return "active_loans" }

func (l *ActiveLoan) IsOverdue(now time.Time) bool {
	return l.Status == ActiveStatusActive && l.DueDate.Before(now)
}
