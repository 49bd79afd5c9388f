package offermock

import (
	"context"

	domain "student-lending-core/internal/domain/offer"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, o *domain.Offer) error
	GetByOfferIDFn            func(ctx context.Context, offerID string) (*domain.Offer, error)
	LockPendingByRequestIDsFn func(ctx context.Context, loanRequestIDs ...uint64) ([]*domain.Offer, error)
	SaveFn                    func(ctx context.Context, o *domain.Offer) error
	ListByRequestIDFn         func(ctx context.Context, requestID string) ([]domain.Offer, error)
	ListByLenderFn            func(ctx context.Context, lenderID string) ([]domain.Offer, error)
}

func (m *Repo) Create(ctx context.Context, o *domain.Offer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByOfferID(ctx context.Context, offerID string) (*domain.Offer, error) {
	if m.GetByOfferIDFn != nil {
		return m.GetByOfferIDFn(ctx, offerID)
	}
	return nil, context.Canceled
}

func (m *Repo) LockPendingByRequestIDs(ctx context.Context, loanRequestIDs ...uint64) ([]*domain.Offer, error) {
	if m.LockPendingByRequestIDsFn != nil {
		return m.LockPendingByRequestIDsFn(ctx, loanRequestIDs...)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, o *domain.Offer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}

func (m *Repo) ListByRequestID(ctx context.Context, requestID string) ([]domain.Offer, error) {
	if m.ListByRequestIDFn != nil {
		return m.ListByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLender(ctx context.Context, lenderID string) ([]domain.Offer, error) {
	if m.ListByLenderFn != nil {
		return m.ListByLenderFn(ctx, lenderID)
	}
	return nil, context.Canceled
}
