package offer

import "context"

type Repository interface {
	Create(ctx context.Context, o *Offer) error
	GetByOfferID(ctx context.Context, offerID string) (*Offer, error)
	// LockPendingByRequestIDs locks the PENDING offers of the given loan requests
	// (numeric ids), ascending offer id.
	LockPendingByRequestIDs(ctx context.Context, loanRequestIDs ...uint64) ([]*Offer, error)
	Save(ctx context.Context, o *Offer) error

	ListByRequestID(ctx context.Context, requestID string) ([]Offer, error)
	ListByLender(ctx context.Context, lenderID string) ([]Offer, error)
}
