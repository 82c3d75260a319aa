package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reserveOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reserve",
		Name:      "operations_total",
		Help:      "Count of proof of reserve requests and rounds.",
	}, []string{"operation", "status"})
	reserveOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "reserve",
		Name:      "operation_duration_seconds",
		Help:      "Duration of proof of reserve requests and rounds.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"operation", "status"})
)

// Reserve tracks the proof of reserve reporter.
type Reserve struct{}

func NewReserve() *Reserve {
	return &Reserve{}
}

func (m Reserve) Observe(operation string, err error, started time.Time) {
	s := status(err)
	reserveOperationsTotal.WithLabelValues(operation, s).Inc()
	reserveOperationDuration.WithLabelValues(operation, s).Observe(time.Since(started).Seconds())
}
