package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tokenscope_outbound_requests_total",
		Help: "Outbound upstream HTTP requests by method",
	}, []string{"method"})

	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tokenscope_outbound_request_errors_total",
		Help: "Outbound upstream HTTP failures by method",
	}, []string{"method"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tokenscope_outbound_request_duration_seconds",
		Help:    "Outbound upstream HTTP call latency",
		Buckets: prometheus.DefBuckets,
	})
)
