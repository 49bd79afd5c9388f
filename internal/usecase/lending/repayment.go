package lending

import (
	"context"
	"errors"
	"time"

	"student-lending-core/internal/domain/loan"
	"student-lending-core/internal/domain/uow"
	"student-lending-core/internal/domain/wallet"
	"student-lending-core/internal/usecase/ledger"
	"student-lending-core/pkg/apperr"

	"go.uber.org/zap"
)

// PayLoan settles an ACTIVE loan in full: total_repayment moves from the
// borrower to the lender, the loan becomes PAID and its request REPAID.
func (u *Usecase) PayLoan(ctx context.Context, loanID, borrowerID string) (*LoanDTO, error) {
	var (
		dto     LoanDTO
		journal ledger.Journal
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.ActiveLoan) error {
		if l.BorrowerID != borrowerID {
			return apperr.NotOwner("loan %s belongs to another borrower", loanID)
		}
		if l.Status != loan.ActiveStatusActive {
			return apperr.InvalidState("loan %s is %s", loanID, l.Status)
		}
		req, err := r.Requests.LockByRequestID(ctx, l.RequestID)
		if err != nil {
			return notFound(err, "loan request %s", l.RequestID)
		}

		wallets, err := lockWallets(ctx, r, l.BorrowerID, l.LenderID)
		if err != nil {
			return err
		}
		if _, err := journal.Post(ctx, r.Wallets, wallets[l.BorrowerID], wallet.KindLoanPay, l.TotalRepayment, l.LoanID); err != nil {
			return err
		}
		if _, err := journal.Post(ctx, r.Wallets, wallets[l.LenderID], wallet.KindLoanRep, l.TotalRepayment, l.LoanID); err != nil {
			return err
		}

		now := u.now()
		l.Status = loan.ActiveStatusPaid
		l.PaidAt = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		req.SetStatus(loan.StatusRepaid, now)
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		err = notFoundLoan(err, loanID)
	}
	u.observe("pay_loan", err, zap.String("loan_id", loanID), zap.String("borrower_id", borrowerID))
	if err != nil {
		return nil, err
	}
	journal.Commit()
	return &dto, nil
}

// ListActiveLoans returns loans where the user is either borrower or lender.
func (u *Usecase) ListActiveLoans(ctx context.Context, userID string) ([]LoanDTO, error) {
	ls, err := u.repos.Loans.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapLoans(ls), nil
}

// ListOverdue reports ACTIVE loans past their due date. It does not change any
// loan's status.
func (u *Usecase) ListOverdue(ctx context.Context, now time.Time) ([]LoanDTO, error) {
	ls, err := u.repos.Loans.ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	u.metrics.SetOverdue(len(ls))
	for i := range ls {
		u.log.Warn("loan overdue",
			zap.String("loan_id", ls[i].LoanID),
			zap.String("borrower_id", ls[i].BorrowerID),
			zap.Time("due_date", ls[i].DueDate))
	}
	return mapLoans(ls), nil
}

// notFoundLoan maps the missing-row error from the loan lock; business errors pass through.
func notFoundLoan(err error, loanID string) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return notFound(err, "loan %s", loanID)
}

func mapLoans(ls []loan.ActiveLoan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, toLoanDTO(&ls[i]))
	}
	return out
}
