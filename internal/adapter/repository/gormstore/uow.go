package gormstore

import (
	"context"

	"student-lending-core/internal/domain/loan"
	"student-lending-core/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// Repos returns repositories bound to db (a tx or the root handle).
func Repos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:    &UserRepository{db: db},
		Wallets:  &WalletRepository{db: db},
		Requests: &LoanRequestRepository{db: db},
		Offers:   &OfferRepository{db: db},
		Loans:    &ActiveLoanRepository{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repos(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.ActiveLoan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := Repos(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.LockByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
