package lending

import (
	"context"
	"testing"
	"time"

	"student-lending-core/internal/adapter/repository/gormstore"
	"student-lending-core/internal/domain/loan"
	"student-lending-core/internal/domain/offer"
	"student-lending-core/internal/domain/uow"
	"student-lending-core/internal/domain/wallet"
	"student-lending-core/internal/testutil/testdb"
	"student-lending-core/internal/usecase/ledger"
	userUsecase "student-lending-core/internal/usecase/user"
	"student-lending-core/pkg/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var start = time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type harness struct {
	t      *testing.T
	ctx    context.Context
	db     *gorm.DB
	uc     *Usecase
	ledger *ledger.Usecase
	users  *userUsecase.Usecase
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithUoW(t, nil)
}

// newHarnessWithUoW lets a test wrap the real unit of work (fault injection).
func newHarnessWithUoW(t *testing.T, wrap func(uow.UnitOfWork) uow.UnitOfWork) *harness {
	t.Helper()
	db := testdb.Open(t)
	var tx uow.UnitOfWork = gormstore.NewGormUoW(db)
	plain := tx
	if wrap != nil {
		tx = wrap(tx)
	}
	reads := gormstore.Repos(db)
	log := zap.NewNop()
	return &harness{
		t:      t,
		ctx:    context.Background(),
		db:     db,
		uc:     NewUsecase(tx, reads, log).WithClock(func() time.Time { return start }),
		ledger: ledger.NewUsecase(plain, log),
		users:  userUsecase.NewUsecase(reads.Users, plain, log),
	}
}

func (h *harness) register(role, name, deposit string) string {
	h.t.Helper()
	u, err := h.users.Register(h.ctx, userUsecase.RegisterInput{Name: name, Email: name + "@uni.edu", Role: role})
	require.NoError(h.t, err)
	if deposit != "" {
		_, err := h.ledger.Deposit(h.ctx, ledger.MoveInput{UserID: u.UserID, Amount: dec(deposit)})
		require.NoError(h.t, err)
	}
	return u.UserID
}

func (h *harness) borrower(name, deposit string) string { return h.register("borrower", name, deposit) }
func (h *harness) lender(name, deposit string) string   { return h.register("lender", name, deposit) }

func (h *harness) request(borrowerID, amount, rate, term string) string {
	h.t.Helper()
	tm, err := loan.ParseTerm(term)
	require.NoError(h.t, err)
	r, err := h.uc.CreateLoanRequest(h.ctx, CreateRequestInput{
		BorrowerID: borrowerID, Amount: dec(amount), InterestRate: dec(rate), Term: tm, Purpose: "tuition",
	})
	require.NoError(h.t, err)
	return r.RequestID
}

func (h *harness) offer(requestID, lenderID, amount, rate string) string {
	h.t.Helper()
	o, err := h.uc.CreateOffer(h.ctx, CreateOfferInput{
		RequestID: requestID, LenderID: lenderID, Amount: dec(amount), Rate: dec(rate),
	})
	require.NoError(h.t, err)
	return o.OfferID
}

func (h *harness) balance(userID string) string {
	h.t.Helper()
	w, err := h.ledger.GetWallet(h.ctx, userID)
	require.NoError(h.t, err)
	return w.Balance
}

func (h *harness) requestStatus(requestID string) string {
	h.t.Helper()
	r, err := h.uc.GetLoanRequest(h.ctx, requestID)
	require.NoError(h.t, err)
	return r.Status
}

func (h *harness) offerStatus(offerID string) offer.Status {
	h.t.Helper()
	var o offer.Offer
	require.NoError(h.t, h.db.Where("offer_id = ?", offerID).First(&o).Error)
	return o.Status
}

// snapshot is every observable piece of ledger and loan state.
type snapshot struct {
	balances map[string]string
	txCount  int64
	offers   map[string]offer.Status
	requests map[string]loan.Status
	loans    map[string]loan.ActiveStatus
}

func (h *harness) snapshot() snapshot {
	h.t.Helper()
	s := snapshot{
		balances: map[string]string{},
		offers:   map[string]offer.Status{},
		requests: map[string]loan.Status{},
		loans:    map[string]loan.ActiveStatus{},
	}
	var ws []wallet.Wallet
	require.NoError(h.t, h.db.Find(&ws).Error)
	for _, w := range ws {
		s.balances[w.UserID] = money.Format(w.Balance)
	}
	require.NoError(h.t, h.db.Model(&wallet.Transaction{}).Count(&s.txCount).Error)
	var os []offer.Offer
	require.NoError(h.t, h.db.Find(&os).Error)
	for _, o := range os {
		s.offers[o.OfferID] = o.Status
	}
	var rs []loan.Request
	require.NoError(h.t, h.db.Find(&rs).Error)
	for _, r := range rs {
		s.requests[r.RequestID] = r.Status
	}
	var ls []loan.ActiveLoan
	require.NoError(h.t, h.db.Find(&ls).Error)
	for _, l := range ls {
		s.loans[l.LoanID] = l.Status
	}
	return s
}

// money in the system: wallet balances plus amounts held by PENDING offers.
func (h *harness) systemMoney() decimal.Decimal {
	h.t.Helper()
	total := decimal.Zero
	var ws []wallet.Wallet
	require.NoError(h.t, h.db.Find(&ws).Error)
	for _, w := range ws {
		require.False(h.t, w.Balance.IsNegative(), "wallet %s is negative: %s", w.UserID, w.Balance)
		total = total.Add(w.Balance)
	}
	var os []offer.Offer
	require.NoError(h.t, h.db.Where("status = ?", offer.StatusPending).Find(&os).Error)
	for _, o := range os {
		total = total.Add(o.OfferedAmount)
	}
	return total
}

func (h *harness) checkLoanInvariants() {
	h.t.Helper()
	var ls []loan.ActiveLoan
	require.NoError(h.t, h.db.Find(&ls).Error)
	perRequest := map[uint64]int{}
	activePerBorrower := map[string]int{}
	for _, l := range ls {
		perRequest[l.LoanRequestID]++
		if l.Status == loan.ActiveStatusActive {
			activePerBorrower[l.BorrowerID]++
		}
	}
	for id, n := range perRequest {
		require.LessOrEqual(h.t, n, 1, "request %d has %d loans", id, n)
	}
	for b, n := range activePerBorrower {
		require.LessOrEqual(h.t, n, 1, "borrower %s has %d active loans", b, n)
	}
}
