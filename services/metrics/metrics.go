package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StoreOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shule", Name: "store_ops_total", Help: "Store operations by name",
	}, []string{"op"})
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shule", Name: "http_requests_total", Help: "HTTP requests by method and status",
	}, []string{"method", "status"})
	RequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "shule", Name: "http_request_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(StoreOps, HTTPRequests, RequestDuration)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveRequest(d time.Duration) { RequestDuration.Observe(d.Seconds()) }
