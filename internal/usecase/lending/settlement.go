package lending

import (
	"context"

	"student-lending-core/internal/domain/loan"
	"student-lending-core/internal/domain/offer"
	"student-lending-core/internal/domain/uow"
	"student-lending-core/internal/domain/wallet"
	"student-lending-core/internal/usecase/ledger"
	"student-lending-core/pkg/apperr"
	"student-lending-core/pkg/id"
	"student-lending-core/pkg/money"

	"go.uber.org/zap"
)

// AcceptOffer funds a loan request from one of its offers. In one transaction
// it credits the borrower with the held amount, records the ActiveLoan, refunds
// every competing offer on the request and rejects the borrower's other
// PENDING requests along with their offers.
func (u *Usecase) AcceptOffer(ctx context.Context, in OfferActionInput) (*AcceptResult, error) {
	var (
		res     AcceptResult
		journal ledger.Journal
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// first statement: no snapshot read may precede this lock
		if _, err := r.Users.LockByUserID(ctx, in.BorrowerID); err != nil {
			return notFound(err, "user %s", in.BorrowerID)
		}
		o, err := r.Offers.GetByOfferID(ctx, in.OfferID)
		if err != nil {
			return notFound(err, "offer %s", in.OfferID)
		}
		owner, err := r.Requests.GetByRequestID(ctx, o.RequestID)
		if err != nil {
			return notFound(err, "loan request %s", o.RequestID)
		}
		if owner.BorrowerID != in.BorrowerID {
			return apperr.NotOwner("offer %s is not on your loan request", in.OfferID)
		}

		// locks: borrower row (above), pending requests, their pending offers, then wallets
		requests, err := r.Requests.LockPendingByBorrower(ctx, in.BorrowerID)
		if err != nil {
			return err
		}
		var target *loan.Request
		requestIDs := make([]uint64, 0, len(requests))
		for _, req := range requests {
			requestIDs = append(requestIDs, req.ID)
			if req.ID == owner.ID {
				target = req
			}
		}
		if target == nil {
			return apperr.InvalidState("loan request %s is no longer pending", owner.RequestID)
		}

		offers, err := r.Offers.LockPendingByRequestIDs(ctx, requestIDs...)
		if err != nil {
			return err
		}
		accepted := findOffer(offers, in.OfferID)
		if accepted == nil {
			return apperr.InvalidState("offer %s is no longer pending", in.OfferID)
		}

		active, err := r.Loans.CountActiveByBorrower(ctx, in.BorrowerID)
		if err != nil {
			return err
		}
		if active > 0 {
			return apperr.InvalidState("borrower %s already has an active loan", in.BorrowerID)
		}

		wallets, err := lockWallets(ctx, r, append(lenders(offers), in.BorrowerID)...)
		if err != nil {
			return err
		}

		// the lender's funds left their wallet at offer time; this completes the transfer
		if _, err := journal.Post(ctx, r.Wallets, wallets[in.BorrowerID], wallet.KindLoanRcv, accepted.OfferedAmount, accepted.OfferID); err != nil {
			return err
		}

		now := u.now()
		accepted.Status = offer.StatusAccepted
		if err := r.Offers.Save(ctx, accepted); err != nil {
			return err
		}
		target.SetStatus(loan.StatusFunded, now)
		if err := r.Requests.Save(ctx, target); err != nil {
			return err
		}

		l := &loan.ActiveLoan{
			LoanID:          id.NewID32(),
			LoanRequestID:   target.ID,
			RequestID:       target.RequestID,
			OfferID:         accepted.OfferID,
			LenderID:        accepted.LenderID,
			BorrowerID:      in.BorrowerID,
			PrincipalAmount: accepted.OfferedAmount,
			InterestRate:    accepted.OfferedRate,
			TotalRepayment:  money.TotalRepayment(accepted.OfferedAmount, accepted.OfferedRate),
			StartDate:       now,
			DueDate:         target.Term().DueFrom(now),
			Status:          loan.ActiveStatusActive,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		losers := make([]*offer.Offer, 0, len(offers))
		for _, lo := range offers {
			if lo != accepted {
				losers = append(losers, lo)
			}
		}
		declined, err := releaseHolds(ctx, r, &journal, wallets, losers)
		if err != nil {
			return err
		}

		rejected := make([]string, 0, len(requests))
		for _, req := range requests {
			if req == target {
				continue
			}
			req.SetStatus(loan.StatusRejected, now)
			if err := r.Requests.Save(ctx, req); err != nil {
				return err
			}
			rejected = append(rejected, req.RequestID)
		}

		res = AcceptResult{Loan: toLoanDTO(l), DeclinedOffers: declined, RejectedRequests: rejected}
		return nil
	})
	u.observe("accept_offer", err,
		zap.String("offer_id", in.OfferID), zap.String("borrower_id", in.BorrowerID),
		zap.String("loan_id", res.Loan.LoanID), zap.Int("refunded", len(res.DeclinedOffers)),
		zap.Int("rejected", len(res.RejectedRequests)))
	if err != nil {
		return nil, err
	}
	journal.Commit()
	return &res, nil
}
