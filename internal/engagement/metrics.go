package engagement

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engagement counters, served alongside the HTTP metrics on /metrics.
var (
	downloadsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engagement_downloads_total",
		Help: "Total material downloads recorded",
	})
	viewsCounted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engagement_views_counted_total",
		Help: "Total view events that incremented a post counter",
	})
	viewsDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engagement_views_deduplicated_total",
		Help: "Total view events suppressed by the dedup window",
	})
)
