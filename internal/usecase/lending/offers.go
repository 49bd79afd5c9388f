package lending

import (
	"context"
	"strings"

	"student-lending-core/internal/domain/offer"
	"student-lending-core/internal/domain/uow"
	"student-lending-core/internal/domain/user"
	"student-lending-core/internal/domain/wallet"
	"student-lending-core/internal/usecase/ledger"
	"student-lending-core/pkg/apperr"
	"student-lending-core/pkg/id"
	"student-lending-core/pkg/money"

	"go.uber.org/zap"
)

// CreateOffer holds the offered amount out of the lender's wallet and records
// a PENDING offer against the request, atomically.
func (u *Usecase) CreateOffer(ctx context.Context, in CreateOfferInput) (*OfferDTO, error) {
	if err := money.Validate(in.Amount); err != nil {
		return nil, err
	}
	if err := money.ValidateRate(in.Rate); err != nil {
		return nil, err
	}

	var (
		dto     OfferDTO
		journal ledger.Journal
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := requireRole(ctx, r.Users, in.LenderID, user.RoleLender); err != nil {
			return err
		}
		req, err := r.Requests.LockByRequestID(ctx, in.RequestID)
		if err != nil {
			return notFound(err, "loan request %s", in.RequestID)
		}
		if req.BorrowerID == in.LenderID {
			return apperr.NotOwner("cannot offer on your own loan request")
		}
		if !req.IsPending() {
			return apperr.InvalidState("loan request %s is %s", in.RequestID, req.Status)
		}

		wallets, err := lockWallets(ctx, r, in.LenderID)
		if err != nil {
			return err
		}
		o := &offer.Offer{
			OfferID:       id.NewID32(),
			LoanRequestID: req.ID,
			RequestID:     req.RequestID,
			LenderID:      in.LenderID,
			OfferedAmount: in.Amount,
			OfferedRate:   in.Rate,
			Message:       strings.TrimSpace(in.Message),
			Status:        offer.StatusPending,
		}
		if _, err := journal.Post(ctx, r.Wallets, wallets[in.LenderID], wallet.KindHold, in.Amount, o.OfferID); err != nil {
			return err
		}
		if err := r.Offers.Create(ctx, o); err != nil {
			return err
		}
		dto = toOfferDTO(o)
		return nil
	})
	u.observe("create_offer", err,
		zap.String("request_id", in.RequestID), zap.String("lender_id", in.LenderID),
		zap.String("offer_id", dto.OfferID), zap.String("amount", money.Format(in.Amount)))
	if err != nil {
		return nil, err
	}
	journal.Commit()
	return &dto, nil
}

// DeclineOffer refunds the lender's hold and marks the offer DECLINED.
func (u *Usecase) DeclineOffer(ctx context.Context, in OfferActionInput) (*OfferDTO, error) {
	var (
		dto     OfferDTO
		journal ledger.Journal
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Offers.GetByOfferID(ctx, in.OfferID)
		if err != nil {
			return notFound(err, "offer %s", in.OfferID)
		}
		req, err := r.Requests.LockByRequestID(ctx, o.RequestID)
		if err != nil {
			return notFound(err, "loan request %s", o.RequestID)
		}
		if req.BorrowerID != in.BorrowerID {
			return apperr.NotOwner("offer %s is not on your loan request", in.OfferID)
		}

		pending, err := r.Offers.LockPendingByRequestIDs(ctx, req.ID)
		if err != nil {
			return err
		}
		target := findOffer(pending, in.OfferID)
		if target == nil {
			return apperr.InvalidState("offer %s is no longer pending", in.OfferID)
		}

		wallets, err := lockWallets(ctx, r, target.LenderID)
		if err != nil {
			return err
		}
		if _, err := releaseHolds(ctx, r, &journal, wallets, []*offer.Offer{target}); err != nil {
			return err
		}
		dto = toOfferDTO(target)
		return nil
	})
	u.observe("decline_offer", err, zap.String("offer_id", in.OfferID), zap.String("borrower_id", in.BorrowerID))
	if err != nil {
		return nil, err
	}
	journal.Commit()
	return &dto, nil
}

// ListOffers returns every offer made on a request, newest first.
func (u *Usecase) ListOffers(ctx context.Context, requestID string) ([]OfferDTO, error) {
	if _, err := u.repos.Requests.GetByRequestID(ctx, requestID); err != nil {
		return nil, notFound(err, "loan request %s", requestID)
	}
	os, err := u.repos.Offers.ListByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return mapOffers(os), nil
}

func (u *Usecase) ListOffersByLender(ctx context.Context, lenderID string) ([]OfferDTO, error) {
	os, err := u.repos.Offers.ListByLender(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	return mapOffers(os), nil
}

func findOffer(offers []*offer.Offer, offerID string) *offer.Offer {
	for _, o := range offers {
		if o.OfferID == offerID {
			return o
		}
	}
	return nil
}

func mapOffers(os []offer.Offer) []OfferDTO {
	out := make([]OfferDTO, 0, len(os))
	for i := range os {
		out = append(out, toOfferDTO(&os[i]))
	}
	return out
}
