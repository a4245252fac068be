package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "economy"

// EconomyMetrics holds the collectors for economy operations. A nil
// *EconomyMetrics is valid and records nothing.
type EconomyMetrics struct {
	TransactionsTotal    *prometheus.CounterVec
	TransactionDuration  *prometheus.HistogramVec
	AccountsCreatedTotal prometheus.Counter
	RegisteredCurrencies prometheus.Gauge
	OperationErrorsTotal *prometheus.CounterVec
}

// NewEconomyMetrics registers the collectors with reg.
func NewEconomyMetrics(reg prometheus.Registerer) *EconomyMetrics {
	factory := promauto.With(reg)
	return &EconomyMetrics{
		TransactionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_total",
				Help:      "Transactions handled by the processor",
			},
			[]string{"currency", "type", "outcome"},
		),
		TransactionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transaction_duration_seconds",
				Help:      "Time from lock acquisition request to commit",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"type"},
		),
		AccountsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "accounts_created_total",
				Help:      "Accounts created on first access",
			},
		),
		RegisteredCurrencies: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "registered_currencies",
				Help:      "Currencies currently registered",
			},
		),
		OperationErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operation_errors_total",
				Help:      "Failed provider operations by error kind",
			},
			[]string{"operation", "kind"},
		),
	}
}

func (m *EconomyMetrics) ObserveTransaction(currency, txType, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.TransactionsTotal.WithLabelValues(currency, txType, outcome).Inc()
	m.TransactionDuration.WithLabelValues(txType).Observe(elapsed.Seconds())
}

func (m *EconomyMetrics) AccountCreated() {
	if m == nil {
		return
	}
	m.AccountsCreatedTotal.Inc()
}

func (m *EconomyMetrics) SetRegisteredCurrencies(n int) {
	if m == nil {
		return
	}
	m.RegisteredCurrencies.Set(float64(n))
}

func (m *EconomyMetrics) OperationFailed(operation, kind string) {
	if m == nil {
		return
	}
	m.OperationErrorsTotal.WithLabelValues(operation, kind).Inc()
}
