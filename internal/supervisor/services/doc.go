// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services provides suture.Service implementations for Marquee's
long-running components.

  - CatalogService loads the movie catalog (CSV file or URL, falling back to
    the badger snapshot), rebuilds the recommendation index and publishes
    both. It reloads on a timer and on demand via Trigger.
  - HTTPServerService runs an *http.Server and shuts it down gracefully when
    the supervisor context is canceled.

Every service returns ctx.Err() on cancellation so the supervisor treats it
as a clean stop rather than a failure.
*/
package services
