// Package metrics holds prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ghcontributors"

var (
	// GithubRequests counts requests sent to github api by response status code.
	GithubRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "github_requests_total",
		Help:      "Number of requests sent to github api.",
	}, []string{"code"})

	// CacheHits counts reads served from a cache layer.
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Number of contributors reads served from cache.",
	}, []string{"layer"})

	// CacheMisses counts reads that had to go past a cache layer.
	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Number of contributors reads not found in cache.",
	}, []string{"layer"})

	// WidgetLoads counts widget loads by result.
	WidgetLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "widget_loads_total",
		Help:      "Number of contributor widget loads.",
	}, []string{"result"})

	// WidgetLoadDuration observes duration of widget loads.
	WidgetLoadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "widget_load_duration_seconds",
		Help:      "Duration of contributor widget loads.",
		Buckets:   prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		GithubRequests,
		CacheHits,
		CacheMisses,
		WidgetLoads,
		WidgetLoadDuration,
	)
}

// Handler returns http handler exposing registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
