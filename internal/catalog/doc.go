// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package catalog loads, stores and queries the movie catalog.

# Sources

A Source produces the full list of movies:

  - FileSource parses a CSV file on disk.
  - HTTPSource downloads a CSV behind a gobreaker circuit breaker.
  - SnapshotStore reads the last good catalog back from BadgerDB.

The CSV is header driven. Recognized columns are title, genres, directors,
writers, cast, tags, overview, tagline, release_date, runtime, popularity,
vote_average and vote_count. The cast column may be a JSON array or a comma
separated list. When tags is empty the profile text is composed from the
overview, genres, cast, director and writer.

# Queries

Catalog is immutable once built. Library publishes a new Catalog atomically
after each reload, alongside the recommendation index built from the same
movies.
*/
package catalog
