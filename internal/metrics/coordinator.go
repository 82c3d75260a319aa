package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	coordinatorTicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "coordinator",
		Name:      "ticks_total",
		Help:      "Count of coordinator scans.",
	}, []string{"status"})
	coordinatorTickDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "coordinator",
		Name:      "tick_duration_seconds",
		Help:      "Duration of coordinator scans.",
		Buckets:   operationBuckets,
	}, []string{"status"})
	coordinatorWorkTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "coordinator",
		Name:      "work_total",
		Help:      "Count of worker results by kind and outcome.",
	}, []string{"kind", "outcome"})
	coordinatorWorkDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "coordinator",
		Name:      "work_duration_seconds",
		Help:      "Duration from external call start to recorded result.",
		Buckets:   operationBuckets,
	}, []string{"kind", "outcome"})
)

// Coordinator tracks scans and per record outcomes of the worker loop.
type Coordinator struct{}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

func (m Coordinator) ObserveTick(err error, started time.Time) {
	s := status(err)
	coordinatorTicksTotal.WithLabelValues(s).Inc()
	coordinatorTickDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
}

func (m Coordinator) ObserveWork(kind, outcome string, started time.Time) {
	coordinatorWorkTotal.WithLabelValues(kind, outcome).Inc()
	coordinatorWorkDuration.WithLabelValues(kind, outcome).Observe(time.Since(started).Seconds())
}
