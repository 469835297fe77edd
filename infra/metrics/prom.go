package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/queuesim/core/metrics"
)

// PromSink records simulation events in Prometheus metrics.
type PromSink struct {
	completions *prometheus.CounterVec
	assignments *prometheus.CounterVec
	service     *prometheus.HistogramVec
	depth       prometheus.Gauge
}

// NewPromSink registers sink metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	completions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "completion_events_total",
		Help: "Total number of completion events per worker",
	}, []string{"worker_id", "tier"})
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_events_total",
		Help: "Total number of assignment events per worker",
	}, []string{"worker_id", "tier", "policy"})
	service := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "service_duration_seconds",
		Help:    "Measured service duration per completion",
		Buckets: []float64{5, 10, 15, 20, 25, 30, 60},
	}, []string{"worker_id"})
	depth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sink_queue_depth",
		Help: "Waiting queue depth as seen by the sink",
	})

	if err := reg.Register(completions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			completions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(service); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			service = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(depth); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			depth = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{completions: completions, assignments: assignments, service: service, depth: depth}, nil
}

// RecordCompletions increments the counter and observes the service
// duration for each completion.
func (s *PromSink) RecordCompletions(recs []coremetrics.CompletionRecord) error {
	for _, r := range recs {
		s.completions.WithLabelValues(r.WorkerID, r.Tier.String()).Inc()
		s.service.WithLabelValues(r.WorkerID).Observe(r.ServiceSeconds)
	}
	return nil
}

// RecordAssignment increments the assignment counter.
func (s *PromSink) RecordAssignment(rec coremetrics.AssignmentRecord) error {
	s.assignments.WithLabelValues(rec.WorkerID, rec.Tier.String(), rec.Policy).Inc()
	return nil
}

// RecordQueueDepth sets the queue depth gauge.
func (s *PromSink) RecordQueueDepth(depth int) error {
	s.depth.Set(float64(depth))
	return nil
}
