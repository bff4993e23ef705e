// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

// Request structs carry go-playground/validator tags and are checked with
// validateRequest before the handler touches the engine.
//
//	req := RecommendRequest{
//	    Movie: r.URL.Query().Get("movie"),
//	    Cap:   getIntParam(r, "cap", 0),
//	}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
//	    return
//	}

// RecommendRequest holds the query parameters of the single-title endpoint.
// Cap 0 selects the engine default; larger values are clamped by the engine.
type RecommendRequest struct {
	Movie string `query:"movie" validate:"required,notblank,max=500"`
	Cap   int    `query:"cap" validate:"min=0,max=1000"`
}

// WatchlistRequest is the body of the watchlist endpoint.
//
// An empty titles list is valid and yields the fallback list; a missing
// titles field is not.
type WatchlistRequest struct {
	Titles []string `json:"titles" validate:"required,dive,max=500"`
	TopN   int      `json:"top_n" validate:"min=0,max=1000"`
}

// SearchRequest holds the query parameters of the search endpoint.
type SearchRequest struct {
	Query string `query:"query" validate:"required,notblank,max=200"`
	Limit int    `query:"limit" validate:"min=0,max=1000"`
}

// DetailsRequest holds the query parameters of the details endpoint.
type DetailsRequest struct {
	Title string `query:"title" validate:"required,notblank,max=500"`
}

// ExploreRequest holds the query parameters of the explore endpoint.
type ExploreRequest struct {
	Genres []string `query:"genres" validate:"max=20,dive,notblank,max=50"`
	Limit  int      `query:"limit" validate:"min=1,max=100"`
}
