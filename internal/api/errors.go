// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import "errors"

var (
	// errCatalogNotLoaded is reported until the first catalog is published.
	errCatalogNotLoaded = errors.New("catalog not loaded yet")

	// errReloadUnavailable is reported when no reload service is wired.
	errReloadUnavailable = errors.New("catalog reload is not available")
)
