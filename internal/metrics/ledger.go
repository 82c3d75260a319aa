package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "operations_total",
		Help:      "Count of ledger transactions.",
	}, []string{"operation", "status"})
	ledgerOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger transactions, including waiting for the writer lock.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"operation", "status"})
)

// Ledger tracks bbolt view and update transactions.
type Ledger struct{}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (m Ledger) Observe(operation string, err error, started time.Time) {
	s := status(err)
	ledgerOperationsTotal.WithLabelValues(operation, s).Inc()
	ledgerOperationDuration.WithLabelValues(operation, s).Observe(time.Since(started).Seconds())
}
