package ledger

import (
	"time"

	"student-lending-core/internal/domain/wallet"
	"student-lending-core/pkg/money"

	"github.com/shopspring/decimal"
)

type MoveInput struct {
	UserID    string
	Amount    decimal.Decimal
	Reference string
}

type WalletDTO struct {
	UserID    string    `json:"user_id"`
	Balance   string    `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TransactionDTO struct {
	Amount       string    `json:"amount"`
	Kind         string    `json:"kind"`
	Reference    string    `json:"reference"`
	BalanceAfter string    `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

func toWalletDTO(w *wallet.Wallet) *WalletDTO {
	return &WalletDTO{UserID: w.UserID, Balance: money.Format(w.Balance), UpdatedAt: w.UpdatedAt}
}

func toTransactionDTO(t *wallet.Transaction) TransactionDTO {
	return TransactionDTO{
		Amount:       money.Format(t.Amount),
		Kind:         string(t.Kind),
		Reference:    t.Reference,
		BalanceAfter: money.Format(t.BalanceAfter),
		CreatedAt:    t.CreatedAt,
	}
}
