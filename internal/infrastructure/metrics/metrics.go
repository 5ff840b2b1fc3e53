package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	DepositsCreated    prometheus.Counter
	WithdrawalsCreated prometheus.Counter
	StatusTransitions  *prometheus.CounterVec
	TransitionRejected *prometheus.CounterVec
	TransactionAmount  *prometheus.HistogramVec
	OperationDuration  *prometheus.HistogramVec

	// User metrics
	UsersRegistered prometheus.Counter
	BalanceApplied  *prometheus.CounterVec

	// Database metrics
	DBErrors      *prometheus.CounterVec
	DBConnections prometheus.Gauge

	// Reference data metrics
	FeeScheduleFallbacks prometheus.Counter
	ReferenceCacheHits   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		DepositsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_deposits_created_total",
			Help: "Total number of deposit transactions created",
		}),
		WithdrawalsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_withdrawals_created_total",
			Help: "Total number of withdrawal transactions created",
		}),
		StatusTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_status_transitions_total",
				Help: "Total number of applied status transitions",
			},
			[]string{"type", "from", "to"},
		),
		TransitionRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_status_transitions_rejected_total",
				Help: "Total number of rejected status transitions",
			},
			[]string{"type", "from", "to"},
		),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_transaction_amount",
				Help:    "Gross transaction amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_seconds",
				Help:    "Duration of ledger operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_users_registered_total",
			Help: "Total number of registered users",
		}),
		BalanceApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_balance_updates_total",
				Help: "Total number of balance updates by transaction type",
			},
			[]string{"type"},
		),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ledger_db_connections",
			Help: "Current number of database connections",
		}),
		FeeScheduleFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_fee_schedule_fallbacks_total",
			Help: "Times a missing fee schedule defaulted the fee to zero",
		}),
		ReferenceCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_reference_cache_requests_total",
				Help: "Reference data cache requests by outcome",
			},
			[]string{"entity", "outcome"},
		),
	}
}
