package lending

import (
	"context"
	"strings"

	"student-lending-core/internal/domain/loan"
	"student-lending-core/internal/domain/uow"
	"student-lending-core/internal/domain/user"
	"student-lending-core/internal/usecase/ledger"
	"student-lending-core/pkg/apperr"
	"student-lending-core/pkg/id"
	"student-lending-core/pkg/money"

	"go.uber.org/zap"
)

func (u *Usecase) CreateLoanRequest(ctx context.Context, in CreateRequestInput) (*RequestDTO, error) {
	if err := money.Validate(in.Amount); err != nil {
		return nil, err
	}
	if err := money.ValidateRate(in.InterestRate); err != nil {
		return nil, err
	}
	if err := in.Term.Validate(); err != nil {
		return nil, apperr.InvalidInput("%v", err)
	}
	if _, err := requireRole(ctx, u.repos.Users, in.BorrowerID, user.RoleBorrower); err != nil {
		return nil, err
	}

	now := u.now()
	r := &loan.Request{
		RequestID:       id.NewID32(),
		BorrowerID:      in.BorrowerID,
		Amount:          in.Amount,
		InterestRate:    in.InterestRate,
		TermValue:       in.Term.Value,
		TermUnit:        in.Term.Unit,
		Purpose:         strings.TrimSpace(in.Purpose),
		Status:          loan.StatusPending,
		StatusUpdatedAt: now,
	}
	err := u.repos.Requests.Create(ctx, r)
	u.observe("create_request", err, zap.String("request_id", r.RequestID), zap.String("borrower_id", in.BorrowerID))
	if err != nil {
		return nil, err
	}
	dto := toRequestDTO(r)
	return &dto, nil
}

func (u *Usecase) GetLoanRequest(ctx context.Context, requestID string) (*RequestDTO, error) {
	r, err := u.repos.Requests.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, notFound(err, "loan request %s", requestID)
	}
	dto := toRequestDTO(r)
	return &dto, nil
}

// ListOpenRequests is the lenders' marketplace view: PENDING requests, newest first.
func (u *Usecase) ListOpenRequests(ctx context.Context, limit int) ([]RequestDTO, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	rs, err := u.repos.Requests.ListByStatus(ctx, loan.StatusPending, limit)
	if err != nil {
		return nil, err
	}
	return mapRequests(rs), nil
}

func (u *Usecase) ListRequestsByBorrower(ctx context.Context, borrowerID string) ([]RequestDTO, error) {
	rs, err := u.repos.Requests.ListByBorrower(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	return mapRequests(rs), nil
}

// CancelLoanRequest withdraws a PENDING request: every PENDING offer on it is
// refunded and declined, and the request becomes REJECTED.
func (u *Usecase) CancelLoanRequest(ctx context.Context, requestID, borrowerID string) (*CancelResult, error) {
	var (
		res     CancelResult
		journal ledger.Journal
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.LockByRequestID(ctx, requestID)
		if err != nil {
			return notFound(err, "loan request %s", requestID)
		}
		if req.BorrowerID != borrowerID {
			return apperr.NotOwner("loan request %s belongs to another borrower", requestID)
		}
		if !req.IsPending() {
			return apperr.InvalidState("loan request %s is %s", requestID, req.Status)
		}

		offers, err := r.Offers.LockPendingByRequestIDs(ctx, req.ID)
		if err != nil {
			return err
		}
		wallets, err := lockWallets(ctx, r, lenders(offers)...)
		if err != nil {
			return err
		}
		declined, err := releaseHolds(ctx, r, &journal, wallets, offers)
		if err != nil {
			return err
		}

		req.SetStatus(loan.StatusRejected, u.now())
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		res = CancelResult{Request: toRequestDTO(req), DeclinedOffers: declined}
		return nil
	})
	u.observe("cancel_request", err, zap.String("request_id", requestID), zap.Int("refunded", len(res.DeclinedOffers)))
	if err != nil {
		return nil, err
	}
	journal.Commit()
	return &res, nil
}

func mapRequests(rs []loan.Request) []RequestDTO {
	out := make([]RequestDTO, 0, len(rs))
	for i := range rs {
		out = append(out, toRequestDTO(&rs[i]))
	}
	return out
}
