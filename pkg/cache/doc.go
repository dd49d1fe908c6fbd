// Package cache provides fingerprint-keyed disk caching for raw EasyData
// responses.
//
// The store maps a deterministic request fingerprint plus a declared wire
// format to a flat file under a root directory. There is no index and no
// manifest: existence of the file is the cache hit signal.
//
// # Keys
//
//	key := cache.NewKey(recipePK, isExpanded, isMelted, apiFormat, filters.Canonical())
//	key.String() // full MD5 hex digest
//
// Debug keys carry a literal "debug_" prefix and a truncated digest so files
// produced during debugging never shadow production entries:
//
//	cache.NewDebugKey(recipePK).String() // "debug_" + 8 hex chars
//
// # Store
//
//	store, err := cache.NewStore("cache")
//	if err != nil {
//		return err
//	}
//
//	// Consult before fetching; a hit short-circuits the network call.
//	if frame, ok := store.ReadFrame(key.String(), cache.FormatParquet); ok {
//		return frame, nil
//	}
//
//	// On miss, fetch and persist the raw payload verbatim.
//	store.Write(key.String(), cache.FormatParquet, body)
//
// # Fault policy
//
// The cache is an optimization, not a correctness requirement. Read faults
// (missing file, I/O error, malformed content) collapse to a miss so a
// corrupt entry is simply refetched and overwritten. Write and clear faults
// are logged at debug level and swallowed. No cache fault ever reaches the
// caller.
//
// # Limitations
//
// No TTL, no eviction, no size bound, and no cross-process locking: two
// processes sharing a root may race on the same key. Callers that need
// isolation must use distinct roots.
//
// # Metrics
//
// The package exports prometheus metrics:
//
//   - easydata_cache_hits_total{layer="disk"} - Cache hits
//   - easydata_cache_misses_total - Cache misses
//   - easydata_cache_errors_total{operation} - Absorbed cache faults
//   - easydata_cache_files_deleted_total - Files removed by Clear
package cache
