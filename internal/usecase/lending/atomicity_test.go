package lending

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"student-lending-core/internal/domain/loan"
	"student-lending-core/internal/domain/offer"
	"student-lending-core/internal/domain/uow"
	"student-lending-core/internal/domain/wallet"
	"student-lending-core/internal/usecase/ledger"
	"student-lending-core/pkg/apperr"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

func entriesCounted(t *testing.T, kind wallet.Kind) float64 {
	t.Helper()
	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "lending_ledger_entries_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "kind" && lp.GetValue() == string(kind) {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

// failingOffers fails Save for offers moving into one status.
type failingOffers struct {
	offer.Repository
	on offer.Status
}

func (f failingOffers) Save(ctx context.Context, o *offer.Offer) error {
	if o.Status == f.on {
		return errInjected
	}
	return f.Repository.Save(ctx, o)
}

type faultyUoW struct {
	uow.UnitOfWork
	on offer.Status
}

func (f faultyUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return f.UnitOfWork.WithinTx(ctx, func(r uow.Repos) error {
		r.Offers = failingOffers{Repository: r.Offers, on: f.on}
		return fn(r)
	})
}

func TestAcceptOffer_FailureMidSettlementRollsBack(t *testing.T) {
	h := newHarnessWithUoW(t, func(u uow.UnitOfWork) uow.UnitOfWork {
		// refunding the losing offer is the last step of settlement
		return faultyUoW{UnitOfWork: u, on: offer.StatusDeclined}
	})
	l1 := h.lender("l1", "1500")
	l2 := h.lender("l2", "2000")
	b := h.borrower("b", "")
	other := h.request(b, "50", "3", "5_DAYS")
	reqID := h.request(b, "1000", "10", "1_MONTH")
	o1 := h.offer(reqID, l1, "1000", "8")
	h.offer(reqID, l2, "1000", "12")
	before := h.snapshot()
	received := entriesCounted(t, wallet.KindLoanRcv)

	_, err := h.uc.AcceptOffer(h.ctx, OfferActionInput{OfferID: o1, BorrowerID: b})
	require.ErrorIs(t, err, errInjected)
	assert.Equal(t, received, entriesCounted(t, wallet.KindLoanRcv), "rolled-back entries are not counted")

	assert.Equal(t, before, h.snapshot())
	assert.Equal(t, "PENDING", h.requestStatus(reqID))
	assert.Equal(t, "PENDING", h.requestStatus(other))
	assert.Equal(t, "0.00", h.balance(b))
	assert.Equal(t, "500.00", h.balance(l1))
	assert.Equal(t, "1000.00", h.balance(l2))
}

func TestCancelLoanRequest_FailureRollsBackRefunds(t *testing.T) {
	h := newHarnessWithUoW(t, func(u uow.UnitOfWork) uow.UnitOfWork {
		return faultyUoW{UnitOfWork: u, on: offer.StatusDeclined}
	})
	l := h.lender("l", "900")
	b := h.borrower("b", "")
	reqID := h.request(b, "300", "3", "5_DAYS")
	h.offer(reqID, l, "300", "3")
	before := h.snapshot()

	_, err := h.uc.CancelLoanRequest(h.ctx, reqID, b)
	require.ErrorIs(t, err, errInjected)
	assert.Equal(t, before, h.snapshot())
	assert.Equal(t, "600.00", h.balance(l))
}

// world tracks what the system must hold: deposits minus withdrawals.
type world struct {
	h         *harness
	borrowers []string
	lenders   []string

	mu       sync.Mutex
	external decimal.Decimal
}

func (w *world) move(d decimal.Decimal) {
	w.mu.Lock()
	w.external = w.external.Add(d)
	w.mu.Unlock()
}

func (w *world) pick(rng *rand.Rand, ids []string) string { return ids[rng.Intn(len(ids))] }

func (w *world) pendingRequests() []loan.Request {
	var rs []loan.Request
	require.NoError(w.h.t, w.h.db.Where("status = ?", loan.StatusPending).Find(&rs).Error)
	return rs
}

func (w *world) pendingOffers() []offer.Offer {
	var os []offer.Offer
	require.NoError(w.h.t, w.h.db.Where("status = ?", offer.StatusPending).Find(&os).Error)
	return os
}

func (w *world) activeLoans() []loan.ActiveLoan {
	var ls []loan.ActiveLoan
	require.NoError(w.h.t, w.h.db.Where("status = ?", loan.ActiveStatusActive).Find(&ls).Error)
	return ls
}

// step runs one random operation. Business rejections are expected; anything
// else fails the test.
func (w *world) step(rng *rand.Rand) {
	h := w.h
	amount := decimal.NewFromInt(int64(rng.Intn(400) + 1)).Add(decimal.New(int64(rng.Intn(100)), -2))
	var err error
	switch rng.Intn(8) {
	case 0:
		user := w.pick(rng, append(append([]string{}, w.borrowers...), w.lenders...))
		if _, err = h.ledger.Deposit(h.ctx, ledger.MoveInput{UserID: user, Amount: amount}); err == nil {
			w.move(amount)
		}
	case 1:
		user := w.pick(rng, append(append([]string{}, w.borrowers...), w.lenders...))
		if _, err = h.ledger.Withdraw(h.ctx, ledger.MoveInput{UserID: user, Amount: amount}); err == nil {
			w.move(amount.Neg())
		}
	case 2:
		term := loan.Term{Value: rng.Intn(12) + 1, Unit: loan.TermWeeks}
		_, err = h.uc.CreateLoanRequest(h.ctx, CreateRequestInput{
			BorrowerID: w.pick(rng, w.borrowers), Amount: amount, InterestRate: decimal.NewFromInt(int64(rng.Intn(20))), Term: term,
		})
	case 3:
		rs := w.pendingRequests()
		if len(rs) == 0 {
			return
		}
		_, err = h.uc.CreateOffer(h.ctx, CreateOfferInput{
			RequestID: rs[rng.Intn(len(rs))].RequestID, LenderID: w.pick(rng, w.lenders), Amount: amount, Rate: decimal.NewFromInt(int64(rng.Intn(20))),
		})
	case 4, 5:
		os := w.pendingOffers()
		if len(os) == 0 {
			return
		}
		o := os[rng.Intn(len(os))]
		req, gerr := h.uc.GetLoanRequest(h.ctx, o.RequestID)
		require.NoError(h.t, gerr)
		in := OfferActionInput{OfferID: o.OfferID, BorrowerID: req.BorrowerID}
		if rng.Intn(2) == 0 {
			_, err = h.uc.AcceptOffer(h.ctx, in)
		} else {
			_, err = h.uc.DeclineOffer(h.ctx, in)
		}
	case 6:
		rs := w.pendingRequests()
		if len(rs) == 0 {
			return
		}
		r := rs[rng.Intn(len(rs))]
		_, err = h.uc.CancelLoanRequest(h.ctx, r.RequestID, r.BorrowerID)
	case 7:
		ls := w.activeLoans()
		if len(ls) == 0 {
			return
		}
		l := ls[rng.Intn(len(ls))]
		_, err = h.uc.PayLoan(h.ctx, l.LoanID, l.BorrowerID)
	}
	if err != nil {
		require.NotEqual(h.t, apperr.CodeInternal, apperr.CodeOf(err), "unexpected error: %v", err)
	}
}

func newWorld(h *harness, borrowers, lenders int) *world {
	w := &world{h: h, external: decimal.Zero}
	for i := 0; i < borrowers; i++ {
		w.borrowers = append(w.borrowers, h.borrower("borrower", "200"))
		w.external = w.external.Add(dec("200"))
	}
	for i := 0; i < lenders; i++ {
		w.lenders = append(w.lenders, h.lender("lender", "1500"))
		w.external = w.external.Add(dec("1500"))
	}
	return w
}

func TestRandomOperations_ConserveMoney(t *testing.T) {
	h := newHarness(t)
	w := newWorld(h, 3, 4)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 300; i++ {
		w.step(rng)
		require.True(t, w.external.Equal(h.systemMoney()), "step %d: system holds %s, expected %s", i, h.systemMoney(), w.external)
		h.checkLoanInvariants()
	}
}

func TestConcurrentOperations_ConserveMoney(t *testing.T) {
	h := newHarness(t)
	w := newWorld(h, 3, 4)

	var wg sync.WaitGroup
	for g := 0; g < 6; g++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < 40; i++ {
				w.step(rng)
			}
		}(int64(g))
	}
	wg.Wait()

	require.True(t, w.external.Equal(h.systemMoney()), "system holds %s, expected %s", h.systemMoney(), w.external)
	h.checkLoanInvariants()
}

func TestConcurrentAccepts_FundOnce(t *testing.T) {
	h := newHarness(t)
	l1 := h.lender("l1", "1000")
	l2 := h.lender("l2", "1000")
	b := h.borrower("b", "")
	r1 := h.request(b, "500", "10", "1_MONTH")
	r2 := h.request(b, "400", "10", "1_MONTH")
	offers := []string{
		h.offer(r1, l1, "500", "10"),
		h.offer(r1, l2, "450", "9"),
		h.offer(r2, l2, "400", "8"),
	}

	var wg sync.WaitGroup
	errs := make([]error, len(offers))
	for i, o := range offers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = h.uc.AcceptOffer(h.ctx, OfferActionInput{OfferID: o, BorrowerID: b})
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	}
	assert.Equal(t, 1, ok)
	assert.Len(t, h.snapshot().loans, 1)
	assert.True(t, dec("2000").Equal(h.systemMoney()), "system holds %s", h.systemMoney())
	h.checkLoanInvariants()
}

func TestConcurrentOffers_NeverOverdraw(t *testing.T) {
	h := newHarness(t)
	l := h.lender("l", "1000")
	var requests []string
	for i := 0; i < 5; i++ {
		b := h.borrower("b", "")
		requests = append(requests, h.request(b, "300", "5", "1_MONTH"))
	}

	var wg sync.WaitGroup
	errs := make([]error, len(requests))
	for i, r := range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = h.uc.CreateOffer(h.ctx, CreateOfferInput{RequestID: r, LenderID: l, Amount: dec("300"), Rate: dec("5")})
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, apperr.ErrInsufficientFunds)
	}
	assert.Equal(t, 3, ok)
	assert.Equal(t, "100.00", h.balance(l))
}
