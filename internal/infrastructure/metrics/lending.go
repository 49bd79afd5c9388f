package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

type LendingMetrics struct {
	ledgerEntries *prometheus.CounterVec
	ledgerVolume  *prometheus.CounterVec
	operations    *prometheus.CounterVec
	overdueLoans  prometheus.Gauge
}

var (
	lendingOnce     sync.Once
	lendingRegistry *LendingMetrics
)

func Lending() *LendingMetrics {
	lendingOnce.Do(func() {
		lendingRegistry = &LendingMetrics{
			ledgerEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "lending_ledger_entries_total",
				Help: "Committed wallet transactions, by kind.",
			}, []string{"kind"}),
			ledgerVolume: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "lending_ledger_volume_total",
				Help: "Sum of wallet transaction amounts, by kind.",
			}, []string{"kind"}),
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "lending_operations_total",
				Help: "Core operations by name and result code.",
			}, []string{"operation", "result"}),
			overdueLoans: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "lending_overdue_loans",
				Help: "ACTIVE loans past their due date at the last sweep.",
			}),
		}
		prometheus.MustRegister(
			lendingRegistry.ledgerEntries,
			lendingRegistry.ledgerVolume,
			lendingRegistry.operations,
			lendingRegistry.overdueLoans,
		)
	})
	return lendingRegistry
}

func (m *LendingMetrics) ObserveEntry(kind string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.ledgerEntries.WithLabelValues(kind).Inc()
	m.ledgerVolume.WithLabelValues(kind).Add(amount.InexactFloat64())
}

// ObserveOperation records one finished operation; result is "ok" or an error code.
func (m *LendingMetrics) ObserveOperation(op, result string) {
	if m == nil {
		return
	}
	if result == "" {
		result = "unknown"
	}
	m.operations.WithLabelValues(op, result).Inc()
}

func (m *LendingMetrics) SetOverdue(n int) {
	if m == nil {
		return
	}
	m.overdueLoans.Set(float64(n))
}
