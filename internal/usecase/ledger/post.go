package ledger

import (
	"context"

	"student-lending-core/internal/domain/wallet"
	"student-lending-core/internal/infrastructure/metrics"

	"github.com/shopspring/decimal"
)

// Post applies one ledger entry to a wallet the caller has locked in the
// current transaction: credit kinds add, debit kinds subtract. The balance
// row and the transaction row are written together.
func Post(ctx context.Context, repo wallet.Repository, w *wallet.Wallet, kind wallet.Kind, amount decimal.Decimal, ref string) (*wallet.Transaction, error) {
	var (
		tx  *wallet.Transaction
		err error
	)
	if kind.IsDebit() {
		tx, err = w.Debit(amount, kind, ref)
	} else {
		tx, err = w.Credit(amount, kind, ref)
	}
	if err != nil {
		return nil, err
	}
	if err := repo.Save(ctx, w); err != nil {
		return nil, err
	}
	if err := repo.AppendTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Journal collects the entries posted inside one transaction. Metrics see
// them only through Commit, after the transaction committed.
type Journal struct {
	entries []*wallet.Transaction
}

func (j *Journal) Post(ctx context.Context, repo wallet.Repository, w *wallet.Wallet, kind wallet.Kind, amount decimal.Decimal, ref string) (*wallet.Transaction, error) {
	tx, err := Post(ctx, repo, w, kind, amount, ref)
	if err != nil {
		return nil, err
	}
	j.entries = append(j.entries, tx)
	return tx, nil
}

func (j *Journal) Len() int { return len(j.entries) }

// Commit records the collected entries and empties the journal.
func (j *Journal) Commit() {
	m := metrics.Lending()
	for _, e := range j.entries {
		m.ObserveEntry(string(e.Kind), e.Amount)
	}
	j.entries = nil
}
