package lending

import (
	"context"
	"slices"

	"student-lending-core/internal/domain/offer"
	"student-lending-core/internal/domain/uow"
	"student-lending-core/internal/domain/wallet"
	"student-lending-core/internal/usecase/ledger"
)

// lockWallets creates any missing wallets, then locks all of them in ascending id order.
func lockWallets(ctx context.Context, r uow.Repos, userIDs ...string) (map[string]*wallet.Wallet, error) {
	ids := slices.Clone(userIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	if len(ids) == 0 {
		return map[string]*wallet.Wallet{}, nil
	}
	if err := r.Wallets.Ensure(ctx, ids...); err != nil {
		return nil, err
	}
	return r.Wallets.LockByUserIDs(ctx, ids...)
}

func lenders(offers []*offer.Offer) []string {
	out := make([]string, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.LenderID)
	}
	return out
}

// releaseHolds refunds each offer's held amount to its lender and declines it.
// The lenders' wallets must already be locked.
func releaseHolds(ctx context.Context, r uow.Repos, j *ledger.Journal, wallets map[string]*wallet.Wallet, offers []*offer.Offer) ([]string, error) {
	declined := make([]string, 0, len(offers))
	for _, o := range offers {
		if _, err := j.Post(ctx, r.Wallets, wallets[o.LenderID], wallet.KindRefund, o.OfferedAmount, o.OfferID); err != nil {
			return nil, err
		}
		o.Status = offer.StatusDeclined
		if err := r.Offers.Save(ctx, o); err != nil {
			return nil, err
		}
		declined = append(declined, o.OfferID)
	}
	return declined, nil
}
