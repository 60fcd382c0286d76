package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the Prometheus metrics exposed at /metrics.
type Registry struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	ImageUploadsTotal   *prometheus.CounterVec
	FeaturedRejections  prometheus.Counter
	ContactSubmissions  prometheus.Counter
}

// NewRegistry initializes all metrics on the default registerer.
func NewRegistry() *Registry {
	return &Registry{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealership_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dealership_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dealership_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),
		ImageUploadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealership_image_uploads_total",
				Help: "Image upload attempts by outcome",
			},
			[]string{"outcome"},
		),
		FeaturedRejections: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dealership_featured_rejections_total",
				Help: "Featured toggles rejected by the capacity guard",
			},
		),
		ContactSubmissions: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dealership_contact_submissions_total",
				Help: "Contact form submissions accepted",
			},
		),
	}
}
