package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Domain mutations
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "operations_total",
			Help: "Total successful mutations",
		},
		[]string{"entity", "action"},
	)
	OperationsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "operations_failed_total",
			Help: "Total failed mutations",
		},
		[]string{"entity", "action"},
	)

	// Store contention
	BusyRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_busy_retries_total",
			Help: "Transactions re-run after transient lock contention",
		},
	)

	// Async audit queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Jobs queued or running on the worker pool",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(OperationsTotal)
	prometheus.MustRegister(OperationsFailed)
	prometheus.MustRegister(BusyRetries)
	prometheus.MustRegister(WorkerQueueDepth)
}

// RegisterPoolGauges exposes live lease occupancy. Wired from main once
// the pool exists.
func RegisterPoolGauges(available, inUse func() int) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "pool_leases_available",
			Help: "Connection leases currently free",
		},
		func() float64 { return float64(available()) },
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "pool_leases_in_use",
			Help: "Connection leases currently held",
		},
		func() float64 { return float64(inUse()) },
	))
}
