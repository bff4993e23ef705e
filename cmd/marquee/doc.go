// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Command marquee queries a movie catalog offline, without a running server.

It reads the same configuration as the server (config file, .env and
environment) and builds the recommendation index in process:

	marquee recommend "The Dark Knight" --cap 20
	marquee watchlist "Heat" "Collateral" "Thief" --top 10
	marquee search knight --limit 5
	marquee snapshot

snapshot imports the configured catalog into the badger snapshot directory
so the server can start while the primary source is unreachable. Run it
while the server is stopped: badger holds an exclusive lock on the
directory.
*/
package main
