package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Expansion Metrics
var (
	BOMExpansions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBOMExpansions,
			Help: HelpTextBOMExpansions,
		},
		[]string{LabelOperation},
	)

	BOMExpansionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBOMExpansionErrors,
			Help: HelpTextBOMExpansionErrors,
		},
		[]string{LabelReason},
	)

	BOMUnresolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBOMUnresolved,
			Help: HelpTextBOMUnresolved,
		},
	)

	BOMExpansionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameBOMExpansionDuration,
			Help:    HelpTextBOMExpansionDuration,
			Buckets: ExpansionLatencyBuckets,
		},
		[]string{LabelOperation},
	)

	BOMBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameBOMBatchSize,
			Help:    HelpTextBOMBatchSize,
			Buckets: BatchSizeBuckets,
		},
	)
)

// Catalog Metrics
var (
	CatalogWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogWrites,
			Help: HelpTextCatalogWrites,
		},
		[]string{LabelOperation},
	)

	GraphCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGraphCacheRequests,
			Help: HelpTextGraphCacheRequests,
		},
		[]string{LabelResult},
	)
)
