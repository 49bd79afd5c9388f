package wallet

import (
	"time"

	"student-lending-core/pkg/apperr"
	"student-lending-core/pkg/money"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindDeposit  Kind = "DEPOSIT"
	KindWithdraw Kind = "WITHDRAW"
	KindHold     Kind = "HOLD"
	KindRefund   Kind = "REFUND"
	KindLoanRcv  Kind = "LOAN_RCV"
	KindLoanPay  Kind = "LOAN_PAY"
	KindLoanRep  Kind = "LOAN_REP"
)

func (k Kind) IsCredit() bool {
	switch k {
	case KindDeposit, KindRefund, KindLoanRcv, KindLoanRep:
		return true
	}
	return false
}

func (k Kind) IsDebit() bool {
	switch k {
	case KindWithdraw, KindHold, KindLoanPay:
		return true
	}
	return false
}

// Table: wallets
type Wallet struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"-"`
	UserID    string          `gorm:"size:32;not null;uniqueIndex:ux_wallets_user_id" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"balance"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string { return "wallets" }

// Credit adds amount and returns the ledger entry to append. The caller holds
// the row lock.
func (w *Wallet) Credit(amount decimal.Decimal, kind Kind, ref string) (*Transaction, error) {
	if err := money.Validate(amount); err != nil {
		return nil, err
	}
	if !kind.IsCredit() {
		return nil, apperr.InvalidState("%s is not a credit kind", kind)
	}
	next := w.Balance.Add(amount)
	if next.GreaterThan(money.MaxBalance) {
		return nil, apperr.InvalidAmount("wallet %s cannot hold more than %s", w.UserID, money.Format(money.MaxBalance))
	}
	w.Balance = next
	return w.entry(amount, kind, ref), nil
}

// Debit removes amount, refusing to take the balance below zero.
func (w *Wallet) Debit(amount decimal.Decimal, kind Kind, ref string) (*Transaction, error) {
	if err := money.Validate(amount); err != nil {
		return nil, err
	}
	if !kind.IsDebit() {
		return nil, apperr.InvalidState("%s is not a debit kind", kind)
	}
	if w.Balance.LessThan(amount) {
		return nil, apperr.InsufficientFunds("wallet %s holds %s, needs %s",
			w.UserID, money.Format(w.Balance), money.Format(amount))
	}
	w.Balance = w.Balance.Sub(amount)
	return w.entry(amount, kind, ref), nil
}

func (w *Wallet) entry(amount decimal.Decimal, kind Kind, ref string) *Transaction {
	return &Transaction{
		WalletID:     w.ID,
		Amount:       amount,
		Kind:         kind,
		Reference:    ref,
		BalanceAfter: w.Balance,
	}
}

// Table: wallet_transactions. Rows are only ever inserted.
type Transaction struct {
	ID           uint64          `gorm:"primaryKey;column:id" json:"-"`
	WalletID     uint64          `gorm:"not null;index:idx_wallet_tx_wallet_id" json:"-"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Kind         Kind            `gorm:"size:16;not null" json:"kind"`
	Reference    string          `gorm:"size:64;not null" json:"reference"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"balance_after"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string { return "wallet_transactions" }
