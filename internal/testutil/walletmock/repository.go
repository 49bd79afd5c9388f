package walletmock

import (
	"context"

	domain "student-lending-core/internal/domain/wallet"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to no-ops, reads to context.Canceled.
type Repo struct {
	EnsureFn            func(ctx context.Context, userIDs ...string) error
	GetByUserIDFn       func(ctx context.Context, userID string) (*domain.Wallet, error)
	LockByUserIDsFn     func(ctx context.Context, userIDs ...string) (map[string]*domain.Wallet, error)
	SaveFn              func(ctx context.Context, w *domain.Wallet) error
	AppendTransactionFn func(ctx context.Context, tx *domain.Transaction) error
	ListTransactionsFn  func(ctx context.Context, walletID uint64, limit int) ([]domain.Transaction, error)
}

func (m *Repo) Ensure(ctx context.Context, userIDs ...string) error {
	if m.EnsureFn != nil {
		return m.EnsureFn(ctx, userIDs...)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) LockByUserIDs(ctx context.Context, userIDs ...string) (map[string]*domain.Wallet, error) {
	if m.LockByUserIDsFn != nil {
		return m.LockByUserIDsFn(ctx, userIDs...)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, w *domain.Wallet) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, w)
	}
	return nil
}

func (m *Repo) AppendTransaction(ctx context.Context, tx *domain.Transaction) error {
	if m.AppendTransactionFn != nil {
		return m.AppendTransactionFn(ctx, tx)
	}
	return nil
}

func (m *Repo) ListTransactions(ctx context.Context, walletID uint64, limit int) ([]domain.Transaction, error) {
	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx, walletID, limit)
	}
	return nil, context.Canceled
}
