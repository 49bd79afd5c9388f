package loan

import (
	"context"
	"time"
)

type RequestRepository interface {
	Create(ctx context.Context, r *Request) error
	GetByRequestID(ctx context.Context, requestID string) (*Request, error)
	// LockPendingByBorrower locks every PENDING request of the borrower, ascending id.
	LockPendingByBorrower(ctx context.Context, borrowerID string) ([]*Request, error)
	LockByRequestID(ctx context.Context, requestID string) (*Request, error)
	Save(ctx context.Context, r *Request) error

	ListByStatus(ctx context.Context, status Status, limit int) ([]Request, error)
	ListByBorrower(ctx context.Context, borrowerID string) ([]Request, error)
}

type ActiveLoanRepository interface {
	Create(ctx context.Context, l *ActiveLoan) error
	GetByLoanID(ctx context.Context, loanID string) (*ActiveLoan, error)
	LockByLoanID(ctx context.Context, loanID string) (*ActiveLoan, error)
	Save(ctx context.Context, l *ActiveLoan) error

	CountActiveByBorrower(ctx context.Context, borrowerID string) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]ActiveLoan, error)
	ListOverdue(ctx context.Context, now time.Time) ([]ActiveLoan, error)
}
