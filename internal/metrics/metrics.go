// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

// Package metrics provides Prometheus instrumentation for API latency,
// recommender rebuilds, and import reconciliation outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommender metrics
	RecommendRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_rebuild_duration_seconds",
			Help:    "Duration of full recommender feature rebuilds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendModelItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_items",
			Help: "Number of colognes in the current recommendation model",
		},
	)

	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"mode"},
	)

	// Import reconciliation metrics
	ImportBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_batches_total",
			Help: "Total number of import batches applied",
		},
		[]string{"format", "outcome"}, // format: json|csv, outcome: success|failure
	)

	ImportRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_records_total",
			Help: "Total number of import records processed",
		},
		[]string{"result"}, // added|updated|skipped|error
	)
)

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRebuild records a completed recommender rebuild.
func RecordRebuild(items int, duration time.Duration) {
	RecommendRebuildDuration.Observe(duration.Seconds())
	RecommendModelItems.Set(float64(items))
}

// RecordImportBatch records a completed import batch.
func RecordImportBatch(format string, success bool, added, updated, skipped, errors int) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	ImportBatchesTotal.WithLabelValues(format, outcome).Inc()
	ImportRecordsTotal.WithLabelValues("added").Add(float64(added))
	ImportRecordsTotal.WithLabelValues("updated").Add(float64(updated))
	ImportRecordsTotal.WithLabelValues("skipped").Add(float64(skipped))
	ImportRecordsTotal.WithLabelValues("error").Add(float64(errors))
}
