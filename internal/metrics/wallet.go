package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	walletOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "wallet",
		Name:      "operations_total",
		Help:      "Count of wallet operations.",
	}, []string{"operation", "status"})
	walletOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "wallet",
		Name:      "operation_duration_seconds",
		Help:      "Duration of wallet operations.",
		Buckets:   operationBuckets,
	}, []string{"operation", "status"})
)

// Wallet tracks descriptor, PSBT, broadcast and reserve scan calls.
type Wallet struct{}

func NewWallet() *Wallet {
	return &Wallet{}
}

func (m Wallet) Observe(operation string, err error, started time.Time) {
	s := status(err)
	walletOperationsTotal.WithLabelValues(operation, s).Inc()
	walletOperationDuration.WithLabelValues(operation, s).Observe(time.Since(started).Seconds())
}
