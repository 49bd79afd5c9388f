package gormstore

import (
	"context"
	"time"

	loanDomain "student-lending-core/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActiveLoanRepository struct{ db *gorm.DB }

func NewActiveLoanRepository(db *gorm.DB) *ActiveLoanRepository {
	return &ActiveLoanRepository{db: db}
}

func (r *ActiveLoanRepository) Create(ctx context.Context, l *loanDomain.ActiveLoan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ActiveLoanRepository) Save(ctx context.Context, l *loanDomain.ActiveLoan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *ActiveLoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.ActiveLoan, error) {
	var out loanDomain.ActiveLoan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *ActiveLoanRepository) LockByLoanID(ctx context.Context, loanID string) (*loanDomain.ActiveLoan, error) {
	var out loanDomain.ActiveLoan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *ActiveLoanRepository) CountActiveByBorrower(ctx context.Context, borrowerID string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&loanDomain.ActiveLoan{}).
		Where("borrower_id = ? AND status = ?", borrowerID, loanDomain.ActiveStatusActive).
		Count(&n)
	return n, res.Error
}

func (r *ActiveLoanRepository) ListByUser(ctx context.Context, userID string) ([]loanDomain.ActiveLoan, error) {
	var out []loanDomain.ActiveLoan
	res := r.db.WithContext(ctx).
		Where("borrower_id = ? OR lender_id = ?", userID, userID).
		Order("start_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ActiveLoanRepository) ListOverdue(ctx context.Context, now time.Time) ([]loanDomain.ActiveLoan, error) {
	var out []loanDomain.ActiveLoan
	res := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", loanDomain.ActiveStatusActive, now.UTC()).
		Order("due_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}
