package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameHTTPRequestsTotal   = "http_requests_total"
	NameHTTPRequestDuration = "http_request_duration_seconds"
	LabelOperation          = "operation"
	LabelStatus             = "status"
)

var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameHTTPRequestsTotal,
		Help:      "Total HTTP requests by operation and response status",
		Namespace: Namespace,
	},
	[]string{LabelOperation, LabelStatus},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:      NameHTTPRequestDuration,
		Help:      "HTTP request duration by operation",
		Namespace: Namespace,
		Buckets:   prometheus.DefBuckets,
	},
	[]string{LabelOperation},
)
