package gormstore

import (
	"context"
	"fmt"

	walletDomain "student-lending-core/internal/domain/wallet"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletRepository struct{ db *gorm.DB }

func NewWalletRepository(db *gorm.DB) *WalletRepository { return &WalletRepository{db: db} }

func (r *WalletRepository) Ensure(ctx context.Context, userIDs ...string) error {
	for _, uid := range userIDs {
		w := &walletDomain.Wallet{UserID: uid, Balance: decimal.Zero}
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
			Create(w).Error
		if err != nil {
			return fmt.Errorf("ensure wallet %s: %w", uid, err)
		}
	}
	return nil
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID string) (*walletDomain.Wallet, error) {
	var out walletDomain.Wallet
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *WalletRepository) LockByUserIDs(ctx context.Context, userIDs ...string) (map[string]*walletDomain.Wallet, error) {
	var rows []*walletDomain.Wallet
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id IN ?", userIDs).
		Order("id ASC").
		Find(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := make(map[string]*walletDomain.Wallet, len(rows))
	for _, w := range rows {
		out[w.UserID] = w
	}
	for _, uid := range userIDs {
		if _, ok := out[uid]; !ok {
			return nil, fmt.Errorf("wallet %s: %w", uid, gorm.ErrRecordNotFound)
		}
	}
	return out, nil
}

func (r *WalletRepository) Save(ctx context.Context, w *walletDomain.Wallet) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *WalletRepository) AppendTransaction(ctx context.Context, tx *walletDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *WalletRepository) ListTransactions(ctx context.Context, walletID uint64, limit int) ([]walletDomain.Transaction, error) {
	var out []walletDomain.Transaction
	q := r.db.WithContext(ctx).Where("wallet_id = ?", walletID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return out, q.Find(&out).Error
}
