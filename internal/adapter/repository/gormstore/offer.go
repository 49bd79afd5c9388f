package gormstore

import (
	"context"

	offerDomain "student-lending-core/internal/domain/offer"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OfferRepository struct{ db *gorm.DB }

func NewOfferRepository(db *gorm.DB) *OfferRepository { return &OfferRepository{db: db} }

func (r *OfferRepository) Create(ctx context.Context, o *offerDomain.Offer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OfferRepository) Save(ctx context.Context, o *offerDomain.Offer) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OfferRepository) GetByOfferID(ctx context.Context, offerID string) (*offerDomain.Offer, error) {
	var out offerDomain.Offer
	res := r.db.WithContext(ctx).Where("offer_id = ?", offerID).First(&out)
	return &out, res.Error
}

func (r *OfferRepository) LockPendingByRequestIDs(ctx context.Context, loanRequestIDs ...uint64) ([]*offerDomain.Offer, error) {
	if len(loanRequestIDs) == 0 {
		return nil, nil
	}
	var out []*offerDomain.Offer
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_request_id IN ? AND status = ?", loanRequestIDs, offerDomain.StatusPending).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *OfferRepository) ListByRequestID(ctx context.Context, requestID string) ([]offerDomain.Offer, error) {
	var out []offerDomain.Offer
	res := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *OfferRepository) ListByLender(ctx context.Context, lenderID string) ([]offerDomain.Offer, error) {
	var out []offerDomain.Offer
	res := r.db.WithContext(ctx).
		Where("lender_id = ?", lenderID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
