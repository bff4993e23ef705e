// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/marquee/internal/catalog"
)

// exploreTopN is the length of each explore list.
const exploreTopN = 10

// DefaultExploreGenres are listed when the request names none.
var DefaultExploreGenres = []string{
	"Action", "Drama", "Comedy", "Romance", "Crime", "Thriller", "Animation",
	"Family", "Fantasy", "Horror", "Mystery", "Documentary",
}

// SearchResponse is the payload of the search and details endpoints.
type SearchResponse struct {
	Results []catalog.Movie `json:"results"`
}

// ExploreResponse groups the browse lists.
type ExploreResponse struct {
	Popular  []catalog.Movie            `json:"popular"`
	TopRated []catalog.Movie            `json:"top_rated"`
	Genres   map[string][]catalog.Movie `json:"genres"`
}

// SearchMovies handles GET /api/v1/movies/search?query=
// Titles containing the query, ignoring case. 404 when nothing matches.
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, err := getIntParam(r, "limit", h.config.SearchLimit)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := SearchRequest{
		Query: r.URL.Query().Get("query"),
		Limit: limit,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	c, ok := h.currentCatalog(w, r)
	if !ok {
		return
	}

	// one extra row tells whether the limit truncated the list
	fetch := req.Limit
	if fetch > 0 {
		fetch++
	}
	results := c.Search(req.Query, fetch)
	if len(results) == 0 {
		rw.NotFound("No movies found for your search.")
		return
	}

	hasMore := req.Limit > 0 && len(results) > req.Limit
	if hasMore {
		results = results[:req.Limit]
	}
	rw.SuccessWithMeta(SearchResponse{Results: results}, &APIMeta{
		Pagination: &PaginationMeta{Count: len(results), Limit: req.Limit, HasMore: hasMore},
	})
}

// GetMovieDetails handles GET /api/v1/movies/details?title=
// Exact title lookup, ignoring case and surrounding space.
func (h *Handler) GetMovieDetails(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := DetailsRequest{Title: r.URL.Query().Get("title")}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	c, ok := h.currentCatalog(w, r)
	if !ok {
		return
	}

	m, found := c.Get(req.Title)
	if !found {
		rw.NotFound("Movie not found: " + strings.TrimSpace(req.Title))
		return
	}
	rw.Success(m)
}

// Explore handles GET /api/v1/explore?genres=a,b
// Returns the most popular titles, the highest rated titles, and the highest
// rated titles of each genre.
func (h *Handler) Explore(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, err := getIntParam(r, "limit", exploreTopN)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := ExploreRequest{
		Genres: parseCommaSeparated(r.URL.Query().Get("genres")),
		Limit:  limit,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	if len(req.Genres) == 0 {
		req.Genres = DefaultExploreGenres
	}

	c, ok := h.currentCatalog(w, r)
	if !ok {
		return
	}

	rw.Success(ExploreResponse{
		Popular:  c.TopByPopularity(req.Limit),
		TopRated: c.TopByVoteAverage(req.Limit),
		Genres:   c.TopByGenre(req.Genres, req.Limit),
	})
}
