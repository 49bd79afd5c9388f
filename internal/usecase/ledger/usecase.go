package ledger

import (
	"context"
	"errors"
	"strings"

	"student-lending-core/internal/domain/uow"
	"student-lending-core/internal/domain/wallet"
	"student-lending-core/internal/infrastructure/metrics"
	"student-lending-core/pkg/apperr"
	"student-lending-core/pkg/id"
	"student-lending-core/pkg/money"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultTxLimit = 100

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{uow: tx, log: log.Named("ledger")}
}

// GetWallet returns the user's wallet, creating an empty one on first use.
func (u *Usecase) GetWallet(ctx context.Context, userID string) (*WalletDTO, error) {
	var dto *WalletDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := ensureWallet(ctx, r, userID)
		if err != nil {
			return err
		}
		dto = toWalletDTO(w)
		return nil
	})
	return dto, err
}

func (u *Usecase) Deposit(ctx context.Context, in MoveInput) (*TransactionDTO, error) {
	return u.move(ctx, "deposit", wallet.KindDeposit, in)
}

func (u *Usecase) Withdraw(ctx context.Context, in MoveInput) (*TransactionDTO, error) {
	return u.move(ctx, "withdraw", wallet.KindWithdraw, in)
}

func (u *Usecase) move(ctx context.Context, op string, kind wallet.Kind, in MoveInput) (*TransactionDTO, error) {
	if err := money.Validate(in.Amount); err != nil {
		return nil, err
	}
	ref := strings.TrimSpace(in.Reference)
	if ref == "" {
		ref = id.NewReference(string(kind))
	}

	var (
		dto     TransactionDTO
		journal Journal
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := ensureWallet(ctx, r, in.UserID); err != nil {
			return err
		}
		ws, err := r.Wallets.LockByUserIDs(ctx, in.UserID)
		if err != nil {
			return err
		}
		tx, err := journal.Post(ctx, r.Wallets, ws[in.UserID], kind, in.Amount, ref)
		if err != nil {
			return err
		}
		dto = toTransactionDTO(tx)
		return nil
	})
	metrics.Lending().ObserveOperation(op, resultOf(err))
	if err != nil {
		u.log.Info(op+" rejected", zap.String("user_id", in.UserID), zap.Error(err))
		return nil, err
	}
	journal.Commit()
	u.log.Info(op, zap.String("user_id", in.UserID), zap.String("amount", dto.Amount), zap.String("reference", ref))
	return &dto, nil
}

func (u *Usecase) ListTransactions(ctx context.Context, userID string, limit int) ([]TransactionDTO, error) {
	if limit <= 0 || limit > defaultTxLimit {
		limit = defaultTxLimit
	}
	var out []TransactionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := ensureWallet(ctx, r, userID)
		if err != nil {
			return err
		}
		txs, err := r.Wallets.ListTransactions(ctx, w.ID, limit)
		if err != nil {
			return err
		}
		out = make([]TransactionDTO, 0, len(txs))
		for i := range txs {
			out = append(out, toTransactionDTO(&txs[i]))
		}
		return nil
	})
	return out, err
}

// ensureWallet requires the user to exist, then lazily creates the wallet.
func ensureWallet(ctx context.Context, r uow.Repos, userID string) (*wallet.Wallet, error) {
	if _, err := r.Users.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %s", userID)
		}
		return nil, err
	}
	if err := r.Wallets.Ensure(ctx, userID); err != nil {
		return nil, err
	}
	return r.Wallets.GetByUserID(ctx, userID)
}

func resultOf(err error) string {
	if err == nil {
		return "ok"
	}
	return apperr.CodeOf(err)
}
