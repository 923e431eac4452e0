// Package metrics exposes Prometheus instrumentation for the prediction
// service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theoremus-urban-solutions/vehicle-prediction/predict"
)

// Collector owns a private registry so tests can build collectors without
// global registration conflicts.
type Collector struct {
	reg *prometheus.Registry

	VehiclesEnhanced  prometheus.Counter
	PositionFallbacks prometheus.Counter
	FeedRefreshErrs   prometheus.Counter

	FeedTimestamp prometheus.Gauge
	BatchSize     prometheus.Gauge

	BatchDuration prometheus.Histogram
}

// NewCollector creates and registers the service metrics.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		VehiclesEnhanced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prediction_vehicles_enhanced_total",
			Help: "Total vehicle fixes run through the enhancement pipeline.",
		}),
		PositionFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prediction_position_fallbacks_total",
			Help: "Total position predictions that fell back to raw coordinates.",
		}),
		FeedRefreshErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prediction_feed_refresh_errors_total",
			Help: "Total vehicle feed refresh failures.",
		}),
		FeedTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "prediction_feed_timestamp_seconds",
			Help: "Header timestamp of the last decoded vehicle feed.",
		}),
		BatchSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "prediction_batch_size",
			Help: "Vehicle count of the last enhancement batch.",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "prediction_batch_duration_seconds",
			Help:    "Duration of enhancement batch computations.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
	}

	reg.MustRegister(
		c.VehiclesEnhanced, c.PositionFallbacks, c.FeedRefreshErrs,
		c.FeedTimestamp, c.BatchSize, c.BatchDuration,
	)
	return c
}

// ObserveBatch records one enhancement batch.
func (c *Collector) ObserveBatch(enhanced []predict.EnhancedVehicle, d time.Duration) {
	c.VehiclesEnhanced.Add(float64(len(enhanced)))
	c.BatchSize.Set(float64(len(enhanced)))
	c.BatchDuration.Observe(d.Seconds())
	for _, v := range enhanced {
		if v.PositionMethod == predict.PositionMethodFallback && !v.PositionSuccess {
			c.PositionFallbacks.Inc()
		}
	}
}

// Handler serves the registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
