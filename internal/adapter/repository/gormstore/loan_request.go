package gormstore

import (
	"context"

	loanDomain "student-lending-core/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRequestRepository struct{ db *gorm.DB }

func NewLoanRequestRepository(db *gorm.DB) *LoanRequestRepository {
	return &LoanRequestRepository{db: db}
}

func (r *LoanRequestRepository) Create(ctx context.Context, lr *loanDomain.Request) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *LoanRequestRepository) Save(ctx context.Context, lr *loanDomain.Request) error {
	return r.db.WithContext(ctx).Save(lr).Error
}

func (r *LoanRequestRepository) GetByRequestID(ctx context.Context, requestID string) (*loanDomain.Request, error) {
	var out loanDomain.Request
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *LoanRequestRepository) LockByRequestID(ctx context.Context, requestID string) (*loanDomain.Request, error) {
	var out loanDomain.Request
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", requestID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRequestRepository) LockPendingByBorrower(ctx context.Context, borrowerID string) ([]*loanDomain.Request, error) {
	var out []*loanDomain.Request
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("borrower_id = ? AND status = ?", borrowerID, loanDomain.StatusPending).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRequestRepository) ListByStatus(ctx context.Context, status loanDomain.Status, limit int) ([]loanDomain.Request, error) {
	var out []loanDomain.Request
	q := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return out, q.Find(&out).Error
}

func (r *LoanRequestRepository) ListByBorrower(ctx context.Context, borrowerID string) ([]loanDomain.Request, error) {
	var out []loanDomain.Request
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
