// Package metrics holds the process-wide Prometheus collectors for catalog
// fetches, icon loads and the active transfer.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const namespace = "altcat"

// Result label values.
const (
	ResultOK             = "ok"
	ResultTransportError = "transport_error"
	ResultDecodeError    = "decode_error"
)

var registry = prometheus.NewRegistry()

var (
	CatalogFetches = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_fetch_total",
			Help:      "Catalog document fetches by result",
		},
		[]string{"result"},
	)

	CatalogFetchDuration = promauto.With(registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_fetch_duration_seconds",
			Help:      "Time to fetch and decode one catalog document",
			Buckets:   prometheus.DefBuckets,
		},
	)

	IconFetches = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "icon_fetch_total",
			Help:      "Icon network fetches by result",
		},
		[]string{"result"},
	)

	IconCacheHits = promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "icon_cache_hits_total",
			Help:      "Icon requests served from the cache",
		},
	)

	TransferRatio = promauto.With(registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transfer_ratio",
			Help:      "Progress ratio of the active transfer (0..1)",
		},
	)
)

// Registry exposes the package registry (tests, embedding).
func Registry() *prometheus.Registry {
	return registry
}

// WriteText dumps every gathered family in the Prometheus text format.
func WriteText(w io.Writer) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
