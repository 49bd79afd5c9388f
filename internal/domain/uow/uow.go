package uow

import (
	"context"

	"student-lending-core/internal/domain/loan"
	"student-lending-core/internal/domain/offer"
	"student-lending-core/internal/domain/user"
	"student-lending-core/internal/domain/wallet"
)

// Repos are bound to one transaction.
type Repos struct {
	Users    user.Repository
	Wallets  wallet.Repository
	Requests loan.RequestRepository
	Offers   offer.Repository
	Loans    loan.ActiveLoanRepository
}

// UnitOfWork runs fn in a single transaction; any error rolls back every write.
//
// Row locks must be taken in this order: borrower user row, active loan, loan
// requests, offers, wallets. Within one table, ascending id. AcceptOffer takes
// the borrower row as its first statement, so accepts for one borrower run one
// at a time and the active-loan count reads after the previous accept committed.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the active loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.ActiveLoan) error) error
}
