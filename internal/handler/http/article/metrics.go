package article

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// articlesCreatedTotal counts article creations by publication state.
// Publish transitions are counted by the newsletter fan-out metrics.
var articlesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "articles_created_total",
		Help: "Total articles created, by publication state",
	},
	[]string{"published"},
)

// RecordArticleCreated records an article creation.
func RecordArticleCreated(published bool) {
	label := "false"
	if published {
		label = "true"
	}
	articlesCreatedTotal.WithLabelValues(label).Inc()
}
