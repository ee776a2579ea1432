package behavior

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bjaus/mediator"
)

// Collector measures dispatches for Prometheus. It is passed explicitly to
// whoever registers it; there is no process-wide instance.
type Collector struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewCollector creates a Collector whose metrics are prefixed with
// namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "dispatch_duration_seconds",
				Help:      "Request dispatch duration distribution",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"request", "status"},
		),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "dispatches_total",
				Help:      "Total number of request dispatches by request type and status",
			},
			[]string{"request", "status"},
		),
	}
}

// Register registers the collector with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	return reg.Register(c)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.duration.Describe(ch)
	c.total.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.duration.Collect(ch)
	c.total.Collect(ch)
}

// Observe records one dispatch.
func (c *Collector) Observe(request, status string, d time.Duration) {
	c.duration.WithLabelValues(request, status).Observe(d.Seconds())
	c.total.WithLabelValues(request, status).Inc()
}

// Behavior returns a behavior that records every dispatch in c.
func (c *Collector) Behavior() mediator.Behavior[any, any] {
	return mediator.BehaviorFunc[any, any](func(ctx context.Context, req any, next mediator.Next[any]) (any, error) {
		start := time.Now()
		resp, err := next(ctx)
		request, _ := names(ctx, req)
		c.Observe(request, status(resp, err), time.Since(start))
		return resp, err
	})
}
