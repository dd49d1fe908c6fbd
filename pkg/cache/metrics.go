package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by layer (disk)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easydata_cache_hits_total",
			Help: "Total number of EasyData cache hits",
		},
		[]string{"layer"}, // "disk"
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "easydata_cache_misses_total",
			Help: "Total number of EasyData cache misses",
		},
	)

	// CacheErrors tracks absorbed cache faults by operation
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easydata_cache_errors_total",
			Help: "Total number of cache operation faults (absorbed, never surfaced)",
		},
		[]string{"operation"}, // "read", "write", "clear"
	)

	// CacheFilesDeleted tracks files removed by Clear
	CacheFilesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "easydata_cache_files_deleted_total",
			Help: "Total number of cache files deleted by clear operations",
		},
	)
)
