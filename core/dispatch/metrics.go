package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	itemsArrived   *prometheus.CounterVec
	itemsCompleted *prometheus.CounterVec
	waitSeconds    *prometheus.HistogramVec
	queueDepth     prometheus.Gauge
	policySwitches *prometheus.CounterVec
	assignRaces    prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, *prometheus.HistogramVec, prometheus.Gauge, *prometheus.CounterVec, prometheus.Counter) {
	arr := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "work_items_arrived_total",
			Help: "Number of work items generated",
		},
		[]string{"tier"},
	)
	done := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "work_items_completed_total",
			Help: "Number of work items fully served",
		},
		[]string{"tier"},
	)
	wait := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "work_item_wait_seconds",
			Help:    "Time spent waiting before service started",
			Buckets: []float64{1, 2, 5, 10, 20, 40, 80, 160},
		},
		[]string{"tier"},
	)
	depth := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "waiting_queue_depth",
			Help: "Number of items currently waiting",
		},
	)
	switches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policy_switches_total",
			Help: "Number of dispatch policy switches",
		},
		[]string{"policy"},
	)
	races := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assignment_races_total",
			Help: "Number of detected assignment races",
		},
	)
	return arr, done, wait, depth, switches, races
}

func init() {
	itemsArrived, itemsCompleted, waitSeconds, queueDepth, policySwitches, assignRaces = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(itemsArrived, itemsCompleted, waitSeconds, queueDepth, policySwitches, assignRaces)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	itemsArrived, itemsCompleted, waitSeconds, queueDepth, policySwitches, assignRaces = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
