package client

import (
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clearpass_client",
			Name:      "requests_total",
			Help:      "Requests sent to the ClearPass API, by method and status code.",
		},
		[]string{"method", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clearpass_client",
			Name:      "request_duration_seconds",
			Help:      "Round trip latency of requests sent to the ClearPass API.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// observeRequest records one round trip. Transport failures are counted with
// code "error".
func observeRequest(method string, resp *resty.Response, err error, elapsed time.Duration) {
	code := "error"
	if err == nil && resp != nil {
		code = strconv.Itoa(resp.StatusCode())
	}

	requestsTotal.WithLabelValues(method, code).Inc()
	requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
