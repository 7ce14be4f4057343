// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package api

import (
	"crypto/md5" //nolint:gosec // ranking jitter seed, not crypto
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/moodvie/moodvie/internal/catalog"
	"github.com/moodvie/moodvie/internal/genre"
)

// defaultTitleSearchLimit caps title search results when the client
// does not ask for a limit.
const defaultTitleSearchLimit = 10

// MovieSearch looks up catalog movies by title
//
// @Summary Search movies by title
// @Description Case-insensitive substring search over catalog titles, most popular first.
// @Tags Movies
// @Produce json
// @Param title query string true "Title fragment to search for"
// @Param limit query int false "Maximum results (1-50)" default(10)
// @Success 200 {object} APIResponse "Matching movies"
// @Failure 400 {object} APIResponse "Missing or invalid title"
// @Router /movies/search [get]
func (h *Handler) MovieSearch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := MovieSearchRequest{
		Title: strings.TrimSpace(r.URL.Query().Get("title")),
		Limit: intQueryParam(r, "limit", defaultTitleSearchLimit),
	}
	if !validate(rw, &req) {
		return
	}

	movies, err := h.catalog.SearchByTitle(r.Context(), req.Title, req.Limit)
	if err != nil {
		rw.CatalogError(err)
		return
	}

	rw.Success(map[string]interface{}{
		"query":  req.Title,
		"count":  len(movies),
		"movies": movies,
	})
}

// MovieByID fetches one catalog movie
//
// @Summary Get a movie
// @Description Fetches one movie by its external ID, including the raw source payload.
// @Tags Movies
// @Produce json
// @Param id path int true "External movie ID"
// @Success 200 {object} APIResponse "Movie"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Movie not found"
// @Router /movies/{id} [get]
func (h *Handler) MovieByID(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		rw.BadRequest("Movie ID must be a positive integer")
		return
	}

	movie, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			rw.NotFound("Movie not found")
			return
		}
		rw.CatalogError(err)
		return
	}
	rw.Success(movie)
}

// Recommendations runs a direct genre search
//
// @Summary Get recommendations by genre
// @Description Retrieves and ranks movies for the given genres without a conversation: no session history dedup and no preference personalization. An optional query string enables semantic retrieval.
// @Tags Movies
// @Accept json
// @Produce json
// @Param search body RecommendationsRequest true "Genres, optional limit and query text"
// @Success 200 {object} APIResponse "Ranked movies"
// @Failure 400 {object} APIResponse "Unknown genre names"
// @Router /recommendations [post]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendationsRequest
	if !decodeJSON(rw, r, &req) {
		return
	}

	genres := make([]string, len(req.Genres))
	for i, g := range req.Genres {
		genres[i] = genre.Canonical(g)
	}

	hash := searchHash(genres, req.Query)
	movies := h.searcher.SearchByGenres(r.Context(), nil, genres, req.Limit, false, hash, req.Query)

	rw.Success(map[string]interface{}{
		"genres": genres,
		"count":  len(movies),
		"movies": movies,
	})
}

// Genres lists the genre vocabulary
//
// @Summary List genres
// @Description Returns the full genre vocabulary and the subset the mood mapper recommends from.
// @Tags Movies
// @Produce json
// @Success 200 {object} APIResponse "Genre vocabulary"
// @Router /genres [get]
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(map[string]interface{}{
		"genres":        genre.All(),
		"recommendable": genre.Recommendable(),
	})
}

// searchHash digests a direct search's inputs into the jitter seed, so
// identical requests rank identically.
func searchHash(genres []string, query string) string {
	sorted := append([]string(nil), genres...)
	sort.Strings(sorted)
	seed := fmt.Sprintf("%v-%s", sorted, strings.ToLower(strings.TrimSpace(query)))
	sum := md5.Sum([]byte(seed)) //nolint:gosec
	return hex.EncodeToString(sum[:])[:12]
}

// intQueryParam extracts an integer query parameter with a default.
func intQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
