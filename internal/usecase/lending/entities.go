package lending

import (
	"time"

	"student-lending-core/internal/domain/loan"
	"student-lending-core/internal/domain/offer"
	"student-lending-core/pkg/money"

	"github.com/shopspring/decimal"
)

type CreateRequestInput struct {
	BorrowerID   string
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	Term         loan.Term
	Purpose      string
}

type CreateOfferInput struct {
	RequestID string
	LenderID  string
	Amount    decimal.Decimal
	Rate      decimal.Decimal
	Message   string
}

// OfferActionInput identifies an offer and the borrower acting on it.
type OfferActionInput struct {
	OfferID    string
	BorrowerID string
}

type RequestDTO struct {
	RequestID    string    `json:"request_id"`
	BorrowerID   string    `json:"borrower_id"`
	Amount       string    `json:"amount"`
	InterestRate string    `json:"interest_rate"`
	Term         string    `json:"term"`
	TermDays     int       `json:"term_days"`
	Purpose      string    `json:"purpose"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type OfferDTO struct {
	OfferID       string    `json:"offer_id"`
	RequestID     string    `json:"request_id"`
	LenderID      string    `json:"lender_id"`
	OfferedAmount string    `json:"offered_amount"`
	OfferedRate   string    `json:"offered_rate"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type LoanDTO struct {
	LoanID          string     `json:"loan_id"`
	RequestID       string     `json:"request_id"`
	OfferID         string     `json:"offer_id"`
	LenderID        string     `json:"lender_id"`
	BorrowerID      string     `json:"borrower_id"`
	PrincipalAmount string     `json:"principal_amount"`
	InterestRate    string     `json:"interest_rate"`
	TotalRepayment  string     `json:"total_repayment"`
	StartDate       time.Time  `json:"start_date"`
	DueDate         time.Time  `json:"due_date"`
	Status          string     `json:"status"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
}

type AcceptResult struct {
	Loan             LoanDTO  `json:"loan"`
	DeclinedOffers   []string `json:"declined_offers"`
	RejectedRequests []string `json:"rejected_requests"`
}

type CancelResult struct {
	Request        RequestDTO `json:"request"`
	DeclinedOffers []string   `json:"declined_offers"`
}

func toRequestDTO(r *loan.Request) RequestDTO {
	return RequestDTO{
		RequestID:    r.RequestID,
		BorrowerID:   r.BorrowerID,
		Amount:       money.Format(r.Amount),
		InterestRate: money.Format(r.InterestRate),
		Term:         r.Term().String(),
		TermDays:     r.Term().Days(),
		Purpose:      r.Purpose,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

func toOfferDTO(o *offer.Offer) OfferDTO {
	return OfferDTO{
		OfferID:       o.OfferID,
		RequestID:     o.RequestID,
		LenderID:      o.LenderID,
		OfferedAmount: money.Format(o.OfferedAmount),
		OfferedRate:   money.Format(o.OfferedRate),
		Message:       o.Message,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
	}
}

func toLoanDTO(l *loan.ActiveLoan) LoanDTO {
	return LoanDTO{
		LoanID:          l.LoanID,
		RequestID:       l.RequestID,
		OfferID:         l.OfferID,
		LenderID:        l.LenderID,
		BorrowerID:      l.BorrowerID,
		PrincipalAmount: money.Format(l.PrincipalAmount),
		InterestRate:    money.Format(l.InterestRate),
		TotalRepayment:  money.Format(l.TotalRepayment),
		StartDate:       l.StartDate,
		DueDate:         l.DueDate,
		Status:          string(l.Status),
		PaidAt:          l.PaidAt,
	}
}
