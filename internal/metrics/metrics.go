// Package metrics holds the Prometheus collectors for the gallery pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Loads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xgallery_loads_total",
		Help: "Tweet document loads by source kind",
	}, []string{"source"})
	LoadFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xgallery_load_failures_total",
		Help: "Tweet document loads that resolved to an empty result",
	}, []string{"source"})
	LoadsAbandoned = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xgallery_loads_abandoned_total",
		Help: "Callers that stopped waiting on a load because their context ended",
	}, []string{"source"})
	LoadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "xgallery_load_duration_seconds",
		Help:    "Tweet document load duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	RecordsSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xgallery_records_skipped_total",
		Help: "Tweet records dropped from a view",
	}, []string{"reason"})
	BuildDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xgallery_build_duration_seconds",
		Help:    "View-model build duration seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})
)

func init() {
	prometheus.MustRegister(Loads, LoadFailures, LoadsAbandoned, LoadDuration, RecordsSkipped, BuildDuration)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveLoad records a load that started at start.
func ObserveLoad(start time.Time) {
	LoadDuration.Observe(time.Since(start).Seconds())
}

// ObserveBuild records a view build that started at start.
func ObserveBuild(view string, start time.Time) {
	BuildDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

// IncSkipped counts a record dropped for reason.
func IncSkipped(reason string) { RecordsSkipped.WithLabelValues(reason).Inc() }
