package loanmock

import (
	"context"
	"time"

	domain "student-lending-core/internal/domain/loan"
)

var (
	_ domain.RequestRepository    = (*RequestRepo)(nil)
	_ domain.ActiveLoanRepository = (*ActiveLoanRepo)(nil)
)

// RequestRepo is a function-backed mock that satisfies domain.RequestRepository.
type RequestRepo struct {
	CreateFn                func(ctx context.Context, r *domain.Request) error
	GetByRequestIDFn        func(ctx context.Context, requestID string) (*domain.Request, error)
	LockPendingByBorrowerFn func(ctx context.Context, borrowerID string) ([]*domain.Request, error)
	LockByRequestIDFn       func(ctx context.Context, requestID string) (*domain.Request, error)
	SaveFn                  func(ctx context.Context, r *domain.Request) error
	ListByStatusFn          func(ctx context.Context, status domain.Status, limit int) ([]domain.Request, error)
	ListByBorrowerFn        func(ctx context.Context, borrowerID string) ([]domain.Request, error)
}

func (m *RequestRepo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *RequestRepo) GetByRequestID(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *RequestRepo) LockPendingByBorrower(ctx context.Context, borrowerID string) ([]*domain.Request, error) {
	if m.LockPendingByBorrowerFn != nil {
		return m.LockPendingByBorrowerFn(ctx, borrowerID)
	}
	return nil, context.Canceled
}

func (m *RequestRepo) LockByRequestID(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.LockByRequestIDFn != nil {
		return m.LockByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *RequestRepo) Save(ctx context.Context, r *domain.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *RequestRepo) ListByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Request, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status, limit)
	}
	return nil, context.Canceled
}

func (m *RequestRepo) ListByBorrower(ctx context.Context, borrowerID string) ([]domain.Request, error) {
	if m.ListByBorrowerFn != nil {
		return m.ListByBorrowerFn(ctx, borrowerID)
	}
	return nil, context.Canceled
}

// ActiveLoanRepo is a function-backed mock that satisfies domain.ActiveLoanRepository.
type ActiveLoanRepo struct {
	CreateFn                func(ctx context.Context, l *domain.ActiveLoan) error
	GetByLoanIDFn           func(ctx context.Context, loanID string) (*domain.ActiveLoan, error)
	LockByLoanIDFn          func(ctx context.Context, loanID string) (*domain.ActiveLoan, error)
	SaveFn                  func(ctx context.Context, l *domain.ActiveLoan) error
	CountActiveByBorrowerFn func(ctx context.Context, borrowerID string) (int64, error)
	ListByUserFn            func(ctx context.Context, userID string) ([]domain.ActiveLoan, error)
	ListOverdueFn           func(ctx context.Context, now time.Time) ([]domain.ActiveLoan, error)
}

func (m *ActiveLoanRepo) Create(ctx context.Context, l *domain.ActiveLoan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *ActiveLoanRepo) GetByLoanID(ctx context.Context, loanID string) (*domain.ActiveLoan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *ActiveLoanRepo) LockByLoanID(ctx context.Context, loanID string) (*domain.ActiveLoan, error) {
	if m.LockByLoanIDFn != nil {
		return m.LockByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *ActiveLoanRepo) Save(ctx context.Context, l *domain.ActiveLoan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *ActiveLoanRepo) CountActiveByBorrower(ctx context.Context, borrowerID string) (int64, error) {
	if m.CountActiveByBorrowerFn != nil {
		return m.CountActiveByBorrowerFn(ctx, borrowerID)
	}
	return 0, context.Canceled
}

func (m *ActiveLoanRepo) ListByUser(ctx context.Context, userID string) ([]domain.ActiveLoan, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *ActiveLoanRepo) ListOverdue(ctx context.Context, now time.Time) ([]domain.ActiveLoan, error) {
	if m.ListOverdueFn != nil {
		return m.ListOverdueFn(ctx, now)
	}
	return nil, context.Canceled
}
