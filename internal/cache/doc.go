// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package cache provides a thread-safe, generic LRU cache with TTL support.

The recommendation engine uses it to memoize query results. Keys embed the
index generation, so publishing a new index makes every older entry
unreachable; the engine also clears the cache on swap to release memory.

# Usage

	c := cache.New[recommend.Result](10000, 5*time.Minute)
	c.Add(key, result)
	if r, ok := c.Get(key); ok {
	    // served from cache
	}

# Expiration

Entries expire lazily: Get drops an expired entry and reports a miss.
CleanupExpired walks the list from the oldest entry and removes everything
past its deadline.
*/
package cache
