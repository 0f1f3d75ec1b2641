package metrics

import (
  "github.com/prometheus/client_golang/prometheus"
  "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
  HTTPRequestsTotal = promauto.NewCounterVec(
    prometheus.CounterOpts{
      Name: "tracker_http_requests_total",
      Help: "HTTP requests by method, route and status code",
    },
    []string{"method", "route", "status"},
  )

  HTTPRequestDuration = promauto.NewHistogramVec(
    prometheus.HistogramOpts{
      Name:    "tracker_http_request_duration_seconds",
      Help:    "HTTP request latency",
      Buckets: prometheus.DefBuckets,
    },
    []string{"method", "route"},
  )

  SyncRunsTotal = promauto.NewCounterVec(
    prometheus.CounterOpts{
      Name: "tracker_sync_runs_total",
      Help: "Sync runs by outcome",
    },
    []string{"status"},
  )

  SyncItemsTotal = promauto.NewCounterVec(
    prometheus.CounterOpts{
      Name: "tracker_sync_items_total",
      Help: "Scraped items by outcome (processed, unmatched, rejected, failed)",
    },
    []string{"result"},
  )

  SyncBatchesTotal = promauto.NewCounterVec(
    prometheus.CounterOpts{
      Name: "tracker_sync_batches_total",
      Help: "Sync batches by outcome",
    },
    []string{"status"},
  )

  SyncDuration = promauto.NewHistogram(
    prometheus.HistogramOpts{
      Name:    "tracker_sync_duration_seconds",
      Help:    "Duration of a full sync run",
      Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
    },
  )

  ApifyRequestDuration = promauto.NewHistogramVec(
    prometheus.HistogramOpts{
      Name:    "tracker_apify_request_duration_seconds",
      Help:    "Apify API latency by operation and status",
      Buckets: prometheus.DefBuckets,
    },
    []string{"operation", "status"},
  )

  CircuitBreakerState = promauto.NewGaugeVec(
    prometheus.GaugeOpts{
      Name: "tracker_circuit_breaker_state",
      Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
    },
    []string{"name"},
  )
)
