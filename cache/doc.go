// Package cache keeps recent health reports so that bursts of probes do not
// re-run every check.
//
// A report is cached under a key derived from the execution options and the
// names of the checks it covered, so different filters or detail levels
// never share an entry. MemoryCache keeps entries in process; RedisCache
// shares them between replicas. By default only healthy reports are
// cached, so a failure becomes visible on the next request.
package cache
