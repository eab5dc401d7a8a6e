package notify

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for newsletter fan-out monitoring.
var (
	// newsletterFanoutTotal tracks fan-out runs by subscriber count bucket.
	newsletterFanoutSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsletter_fanout_subscribers",
			Help:    "Number of active subscribers per fan-out run",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
	)

	// newsletterSendTotal tracks per-recipient send results.
	newsletterSendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_send_total",
			Help: "Total number of newsletter sends",
		},
		[]string{"status"}, // status: success|failure
	)

	// newsletterSendDuration tracks per-recipient send latency.
	newsletterSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsletter_send_duration_seconds",
			Help:    "Newsletter send duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
	)
)

func recordFanout(subscribers int) {
	newsletterFanoutSize.Observe(float64(subscribers))
}

func recordSend(status string, duration time.Duration) {
	newsletterSendTotal.WithLabelValues(status).Inc()
	newsletterSendDuration.Observe(duration.Seconds())
}
