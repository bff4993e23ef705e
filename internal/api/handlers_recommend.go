// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
)

// RecommendationResponse is the payload of both recommendation endpoints.
type RecommendationResponse struct {
	Movie           string                `json:"movie,omitempty"`
	Recommendations []recommend.Candidate `json:"recommendations"`
	Outcome         recommend.Outcome     `json:"outcome"`
	Resolved        []string              `json:"resolved,omitempty"`
	Unresolved      []string              `json:"unresolved,omitempty"`
	Cached          bool                  `json:"cached"`
}

func newRecommendationResponse(movie string, res *recommend.Result) RecommendationResponse {
	items := res.Items
	if items == nil {
		items = []recommend.Candidate{}
	}
	return RecommendationResponse{
		Movie:           movie,
		Recommendations: items,
		Outcome:         res.Outcome,
		Resolved:        res.Resolved,
		Unresolved:      res.Unresolved,
		Cached:          res.Cached,
	}
}

// GetRecommendations handles GET /api/v1/recommendations?movie=&cap=
// An unknown title is not an error: the list is simply empty.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	capN, err := getIntParam(r, "cap", 0)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := RecommendRequest{
		Movie: r.URL.Query().Get("movie"),
		Cap:   capN,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	movie := strings.TrimSpace(req.Movie)
	res, err := h.engine.RecommendSingle(ctx, movie, req.Cap)
	if err != nil {
		h.queryError(rw, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("movie", sanitizeLogValue(movie)).
		Int("count", len(res.Items)).
		Bool("cached", res.Cached).
		Msg("Served recommendations")

	rw.SuccessWithMeta(newRecommendationResponse(movie, &res), &APIMeta{Generation: res.Generation})
}

// GetWatchlistRecommendations handles POST /api/v1/recommendations/watchlist
// Fallback lists are returned with 200 and the outcome tag set.
func (h *Handler) GetWatchlistRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req WatchlistRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	if limit := h.config.MaxWatchlistTitles; limit > 0 && len(req.Titles) > limit {
		rw.ValidationError(fmt.Sprintf("titles must contain at most %d entries", limit), map[string]interface{}{
			"field": "titles",
			"tag":   "max",
			"value": len(req.Titles),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	res, err := h.engine.RecommendFromWatchlist(ctx, req.Titles, req.TopN)
	if err != nil {
		h.queryError(rw, r, err)
		return
	}

	rw.SuccessWithMeta(newRecommendationResponse("", &res), &APIMeta{Generation: res.Generation})
}

func (h *Handler) queryError(rw *ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, recommend.ErrIndexNotReady) {
		rw.ServiceUnavailable("Recommendation index not loaded yet")
		return
	}
	logging.Ctx(r.Context()).Error().Err(err).Msg("Recommendation query failed")
	rw.InternalError("Failed to generate recommendations")
}
