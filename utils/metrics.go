package utils

import "github.com/prometheus/client_golang/prometheus"

var DispatchSendsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "courier_dispatch_sends_total",
		Help: "Total number of per-channel delivery attempts by final status",
	},
	[]string{"channel", "status"},
)

var DispatchRetriesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "courier_dispatch_retries_total",
		Help: "Total number of delivery retries",
	},
	[]string{"channel"},
)

var DispatchRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "courier_dispatch_requests_total",
		Help: "Total number of dispatch requests executed",
	},
	[]string{"result"},
)

var SweepEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "courier_sweep_events_total",
		Help: "Total number of reminder sweep events by outcome",
	},
	[]string{"result"},
)

// InitMetrics registers all collectors with the default registry.
func InitMetrics() {
	prometheus.MustRegister(DispatchSendsTotal)
	prometheus.MustRegister(DispatchRetriesTotal)
	prometheus.MustRegister(DispatchRequestsTotal)
	prometheus.MustRegister(SweepEventsTotal)
}
