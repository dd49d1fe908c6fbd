// Package metrics provides the centralized Prometheus metrics registry for
// the EasyData client. All metrics are defined in their respective packages
// (client, cache) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the EasyData client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - easydata_cache_hits_total{layer="disk"} (Counter): Cache hits by layer
//   - easydata_cache_misses_total (Counter): Cache misses
//   - easydata_cache_errors_total{operation} (Counter): Cache operation faults
//   - easydata_cache_files_deleted_total (Counter): Files removed by cache clears
//
// Request Metrics (pkg/client):
//   - easydata_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - easydata_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - easydata_errors_total{class} (Counter): Errors by class (client, server, network)
//
// Retry Metrics (pkg/client):
//   - easydata_retries_total{error_class} (Counter): Retry attempts by error class
//   - easydata_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - easydata_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(easydata_cache_hits_total[5m])) /
//   (sum(rate(easydata_cache_hits_total[5m])) + sum(rate(easydata_cache_misses_total[5m])))
//
//   # Request Error Rate
//   rate(easydata_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(easydata_request_duration_seconds_bucket[5m]))
