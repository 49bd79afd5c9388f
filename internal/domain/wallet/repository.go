package wallet

import "context"

type Repository interface {
	// Ensure creates missing wallets with a zero balance. Existing wallets are untouched.
	Ensure(ctx context.Context, userIDs ...string) error
	GetByUserID(ctx context.Context, userID string) (*Wallet, error)
	// LockByUserIDs locks the wallets in ascending id order and returns them keyed by user id.
	LockByUserIDs(ctx context.Context, userIDs ...string) (map[string]*Wallet, error)
	Save(ctx context.Context, w *Wallet) error

	AppendTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, walletID uint64, limit int) ([]Transaction, error)
}
