package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

func TestLending_Counters(t *testing.T) {
	m := Lending()
	if m != Lending() {
		t.Fatalf("Lending() must return the same instance")
	}

	beforeN := testutil.ToFloat64(m.ledgerEntries.WithLabelValues("HOLD"))
	beforeV := testutil.ToFloat64(m.ledgerVolume.WithLabelValues("HOLD"))
	m.ObserveEntry("HOLD", decimal.RequireFromString("12.50"))
	if got := testutil.ToFloat64(m.ledgerEntries.WithLabelValues("HOLD")) - beforeN; got != 1 {
		t.Fatalf("entries delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ledgerVolume.WithLabelValues("HOLD")) - beforeV; got != 12.5 {
		t.Fatalf("volume delta = %v, want 12.5", got)
	}

	before := testutil.ToFloat64(m.operations.WithLabelValues("accept_offer", "unknown"))
	m.ObserveOperation("accept_offer", "")
	if got := testutil.ToFloat64(m.operations.WithLabelValues("accept_offer", "unknown")) - before; got != 1 {
		t.Fatalf("operations delta = %v, want 1", got)
	}

	m.SetOverdue(4)
	if got := testutil.ToFloat64(m.overdueLoans); got != 4 {
		t.Fatalf("overdue = %v, want 4", got)
	}
}

func TestLending_NilSafe(t *testing.T) {
	var m *LendingMetrics
	m.ObserveEntry("DEPOSIT", decimal.NewFromInt(1))
	m.ObserveOperation("deposit", "ok")
	m.SetOverdue(1)
}
