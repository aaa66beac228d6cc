package rpcclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics of outgoing RPC requests, labelled by the RPC method.
var (
	rpcCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of RPC requests made by the client",
			Name:      "requests_total",
			Namespace: "evmgo",
			Subsystem: "rpcclient",
		},
		[]string{"method"},
	)
	rpcFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of RPC requests that returned an error",
			Name:      "failures_total",
			Namespace: "evmgo",
			Subsystem: "rpcclient",
		},
		[]string{"method"},
	)
	rpcTimes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Help:      "RPC request round-trip time",
			Name:      "request_time_seconds",
			Namespace: "evmgo",
			Subsystem: "rpcclient",
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(rpcCalls, rpcFailures, rpcTimes)
}

func addReqTimeMetric(method string, t time.Duration, failed bool) {
	rpcTimes.WithLabelValues(method).Observe(t.Seconds())
	rpcCalls.WithLabelValues(method).Inc()
	if failed {
		rpcFailures.WithLabelValues(method).Inc()
	}
}
