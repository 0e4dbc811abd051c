// Package metrics defines Prometheus metrics for infiniti-drive.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "idrive"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPPanicsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_panics_total",
		Help:      "Total number of handler panics recovered, by route.",
	}, []string{"path"})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last liveness probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last readiness probe succeeded (1) or failed (0).",
	})
)

// CMS metrics.
var (
	CMSRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cms_requests_total",
		Help:      "Total number of CMS page requests.",
	})

	CMSErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cms_errors_total",
		Help:      "Total number of failed CMS listing fetches.",
	})

	CMSFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cms_fetch_duration_seconds",
		Help:      "Duration of complete CMS listing fetches in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	CMSSkippedListingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cms_skipped_listings_total",
		Help:      "Total number of CMS entries dropped for a missing or duplicate ID.",
	})
)

// Inventory metrics.
var (
	InventoryListings = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inventory_listings",
		Help:      "Number of listings in the current inventory snapshot by availability.",
	}, []string{"availability"})

	InventoryLastRefreshTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inventory_last_refresh_timestamp",
		Help:      "Unix timestamp of the last successful inventory refresh.",
	})

	InventoryRefreshFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_refresh_failures_total",
		Help:      "Total number of failed inventory refreshes.",
	})
)

// Catalogue metrics.
var (
	CatalogueQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalogue_queries_total",
		Help:      "Total number of catalogue queries by sort key.",
	}, []string{"sort"})

	CatalogueResultSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalogue_result_size",
		Help:      "Number of listings returned per catalogue query.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
)

// Enquiry metrics.
var (
	EnquiriesQueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enquiries_queued_total",
		Help:      "Total number of enquiries accepted into the dispatch queue.",
	})

	EnquiriesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enquiries_sent_total",
		Help:      "Total number of enquiries delivered to the inbox.",
	})

	EnquiryFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enquiry_failures_total",
		Help:      "Total number of enquiry delivery failures.",
	})

	EnquiriesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enquiries_dropped_total",
		Help:      "Total number of enquiries rejected because the queue was full.",
	})

	EnquiriesAbandonedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enquiries_abandoned_total",
		Help:      "Total number of queued enquiries given up when shutdown ran out of time.",
	})
)
