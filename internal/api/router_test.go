// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/models"
)

var errCatalogDown = errors.New("catalog down")

// testEnvelope mirrors APIResponse with a raw data payload so each test
// decodes data into its own shape.
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func doRequest(t *testing.T, server http.Handler, method, path, body string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	var envelope testEnvelope
	if ct := w.Header().Get("Content-Type"); strings.Contains(ct, "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode envelope from %s %s: %v\nbody: %s", method, path, err, w.Body.String())
		}
	}
	return w, envelope
}

func defaultResults() []models.RankedMovie {
	withReviews := testMovie(1, "Inception", 18, 878)
	withReviews.RawPayload["raw_reviews"] = []interface{}{"Mind-bending and beautiful."}

	return []models.RankedMovie{
		{MovieCandidate: withReviews, Score: 9.1},
		{MovieCandidate: testMovie(2, "Paddington", 35, 10751), Score: 8.4},
	}
}

// =====================================================
// Chat Flow
// =====================================================

func TestRouter_ChatConversationFlow(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(), newFakeCatalog(), defaultResults())

	// Turn 1: a mood statement parks an offer on the session.
	w, envelope := doRequest(t, server, http.MethodPost, "/api/v1/chat",
		`{"message":"I feel really down today"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", w.Code, w.Body.String())
	}
	if !envelope.Success {
		t.Fatalf("success = false: %+v", envelope.Error)
	}

	var first ChatResponse
	if err := json.Unmarshal(envelope.Data, &first); err != nil {
		t.Fatalf("decode chat response: %v", err)
	}
	if first.SessionID == "" {
		t.Error("expected a session ID on the first turn")
	}
	if first.State != "pending_confirmation" {
		t.Errorf("state = %q, want pending_confirmation", first.State)
	}
	if first.Mood == nil {
		t.Fatal("expected a mood judgment on a mood turn")
	}
	if len(first.Mood.RecommendedGenres) == 0 {
		t.Error("expected recommended genres in the judgment")
	}
	if len(first.Recommendations) != 0 {
		t.Error("no recommendations should be served before confirmation")
	}

	// Turn 2: accepting the offer serves ranked movies.
	w, envelope = doRequest(t, server, http.MethodPost, "/api/v1/chat",
		fmt.Sprintf(`{"session_id":%q,"message":"yes please"}`, first.SessionID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", w.Code, w.Body.String())
	}

	var second ChatResponse
	if err := json.Unmarshal(envelope.Data, &second); err != nil {
		t.Fatalf("decode chat response: %v", err)
	}
	if second.SessionID != first.SessionID {
		t.Errorf("session ID changed between turns: %q -> %q", first.SessionID, second.SessionID)
	}
	if second.State != "idle" {
		t.Errorf("state = %q, want idle", second.State)
	}
	if len(second.Recommendations) != 2 {
		t.Fatalf("recommendations = %d, want 2", len(second.Recommendations))
	}
	if got := second.Recommendations[0].ReviewSummary; got != "Viewers loved the performances." {
		t.Errorf("review summary = %q, want the summarizer's sentence", got)
	}
	if second.Recommendations[1].ReviewSummary == "" {
		t.Error("expected a placeholder summary for a movie without reviews")
	}
}

func TestRouter_ChatValidation(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(), newFakeCatalog(), nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing message", `{}`},
		{"malformed session id", `{"session_id":"not-a-uuid","message":"hello"}`},
		{"invalid json", `{"message":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, envelope := doRequest(t, server, http.MethodPost, "/api/v1/chat", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400\nbody: %s", w.Code, w.Body.String())
			}
			if envelope.Success {
				t.Error("success should be false")
			}
			if envelope.Error == nil {
				t.Fatal("expected an error payload")
			}
		})
	}
}

// =====================================================
// Session Lifecycle
// =====================================================

func TestRouter_SessionLifecycle(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(), newFakeCatalog(), defaultResults())

	_, envelope := doRequest(t, server, http.MethodPost, "/api/v1/chat",
		`{"message":"feeling adventurous tonight"}`)
	var chatResp ChatResponse
	if err := json.Unmarshal(envelope.Data, &chatResp); err != nil {
		t.Fatalf("decode chat response: %v", err)
	}
	sid := chatResp.SessionID

	// The session is readable.
	w, envelope := doRequest(t, server, http.MethodGet, "/api/v1/sessions/"+sid, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get session status = %d\nbody: %s", w.Code, w.Body.String())
	}
	var sess models.Session
	if err := json.Unmarshal(envelope.Data, &sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if sess.ID != sid {
		t.Errorf("session ID = %q, want %q", sess.ID, sid)
	}
	if len(sess.Messages) != 2 {
		t.Errorf("messages = %d, want 2 (user + assistant)", len(sess.Messages))
	}

	// History returns the transcript.
	w, envelope = doRequest(t, server, http.MethodGet, "/api/v1/sessions/"+sid+"/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}
	var history struct {
		SessionID string               `json:"session_id"`
		Messages  []models.ChatMessage `json:"messages"`
	}
	if err := json.Unmarshal(envelope.Data, &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history.Messages) != 2 {
		t.Errorf("history messages = %d, want 2", len(history.Messages))
	}

	// Stats reflect the turn.
	w, envelope = doRequest(t, server, http.MethodGet, "/api/v1/sessions/"+sid+"/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats struct {
		ConversationCount int `json:"conversation_count"`
		TotalMessages     int `json:"total_messages"`
	}
	if err := json.Unmarshal(envelope.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.ConversationCount != 1 {
		t.Errorf("conversation_count = %d, want 1", stats.ConversationCount)
	}

	// Export downloads raw JSON, not the envelope.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sid+"/export", nil)
	wExport := httptest.NewRecorder()
	server.ServeHTTP(wExport, req)
	if wExport.Code != http.StatusOK {
		t.Fatalf("export status = %d", wExport.Code)
	}
	if cd := wExport.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q, want attachment", cd)
	}
	var export struct {
		Session *models.Session `json:"session"`
	}
	if err := json.Unmarshal(wExport.Body.Bytes(), &export); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if export.Session == nil || export.Session.ID != sid {
		t.Error("export should embed the full session")
	}

	// Deleting resets the conversation.
	w, _ = doRequest(t, server, http.MethodDelete, "/api/v1/sessions/"+sid, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", w.Code)
	}

	w, envelope = doRequest(t, server, http.MethodGet, "/api/v1/sessions/"+sid, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", w.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v, want code %s", envelope.Error, ErrCodeNotFound)
	}
}

func TestRouter_SessionNotFound(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(), newFakeCatalog(), nil)

	paths := []string{
		"/api/v1/sessions/bea1a9d1-0000-4000-8000-000000000000",
		"/api/v1/sessions/bea1a9d1-0000-4000-8000-000000000000/history",
		"/api/v1/sessions/bea1a9d1-0000-4000-8000-000000000000/stats",
		"/api/v1/sessions/bea1a9d1-0000-4000-8000-000000000000/export",
	}
	for _, path := range paths {
		w, _ := doRequest(t, server, http.MethodGet, path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, w.Code)
		}
	}

	// Deleting an unknown session is also a 404 so clients notice
	// stale IDs.
	w, _ := doRequest(t, server, http.MethodDelete,
		"/api/v1/sessions/bea1a9d1-0000-4000-8000-000000000000", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("DELETE unknown session = %d, want 404", w.Code)
	}
}

func TestRouter_UpdatePreferences(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(), newFakeCatalog(), defaultResults())

	_, envelope := doRequest(t, server, http.MethodPost, "/api/v1/chat",
		`{"message":"bored out of my mind"}`)
	var chatResp ChatResponse
	if err := json.Unmarshal(envelope.Data, &chatResp); err != nil {
		t.Fatalf("decode chat response: %v", err)
	}
	sid := chatResp.SessionID

	w, envelope := doRequest(t, server, http.MethodPut,
		"/api/v1/sessions/"+sid+"/preferences",
		`{"preferred_genres":["Comedy","Animation"],"disliked_genres":["Horror"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", w.Code, w.Body.String())
	}

	var prefs struct {
		PreferredGenres []string `json:"preferred_genres"`
		DislikedGenres  []string `json:"disliked_genres"`
	}
	if err := json.Unmarshal(envelope.Data, &prefs); err != nil {
		t.Fatalf("decode preferences: %v", err)
	}
	if len(prefs.PreferredGenres) != 2 || prefs.PreferredGenres[0] != "Comedy" {
		t.Errorf("preferred = %v, want [Comedy Animation]", prefs.PreferredGenres)
	}

	// Unknown genre names are rejected.
	w, _ = doRequest(t, server, http.MethodPut,
		"/api/v1/sessions/"+sid+"/preferences",
		`{"preferred_genres":["Slasher"]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown genre status = %d, want 400", w.Code)
	}
}

// =====================================================
// Movies and Recommendations
// =====================================================

func TestRouter_MovieSearch(t *testing.T) {
	t.Parallel()

	cat := newFakeCatalog(
		testMovie(27205, "Inception", 28, 878),
		testMovie(157336, "Interstellar", 12, 878),
	)
	server := newTestServer(t, testConfig(), cat, nil)

	w, envelope := doRequest(t, server, http.MethodGet, "/api/v1/movies/search?title=incep", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", w.Code, w.Body.String())
	}

	var result struct {
		Query  string                  `json:"query"`
		Count  int                     `json:"count"`
		Movies []models.MovieCandidate `json:"movies"`
	}
	if err := json.Unmarshal(envelope.Data, &result); err != nil {
		t.Fatalf("decode search result: %v", err)
	}
	if result.Count != 1 || len(result.Movies) != 1 {
		t.Fatalf("count = %d, movies = %d, want 1", result.Count, len(result.Movies))
	}
	if result.Movies[0].Title != "Inception" {
		t.Errorf("title = %q, want Inception", result.Movies[0].Title)
	}

	// Missing title is a validation error.
	w, _ = doRequest(t, server, http.MethodGet, "/api/v1/movies/search", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing title status = %d, want 400", w.Code)
	}
}

func TestRouter_MovieByID(t *testing.T) {
	t.Parallel()

	cat := newFakeCatalog(testMovie(27205, "Inception", 28, 878))
	server := newTestServer(t, testConfig(), cat, nil)

	w, envelope := doRequest(t, server, http.MethodGet, "/api/v1/movies/27205", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", w.Code, w.Body.String())
	}
	var movie models.MovieCandidate
	if err := json.Unmarshal(envelope.Data, &movie); err != nil {
		t.Fatalf("decode movie: %v", err)
	}
	if movie.ExternalID != 27205 {
		t.Errorf("external_id = %d, want 27205", movie.ExternalID)
	}

	w, envelope = doRequest(t, server, http.MethodGet, "/api/v1/movies/999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown movie status = %d, want 404", w.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v, want NOT_FOUND", envelope.Error)
	}

	w, _ = doRequest(t, server, http.MethodGet, "/api/v1/movies/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric ID status = %d, want 400", w.Code)
	}
}

func TestRouter_Recommendations(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(), newFakeCatalog(), defaultResults())

	w, envelope := doRequest(t, server, http.MethodPost, "/api/v1/recommendations",
		`{"genres":["drama","comedy"],"limit":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", w.Code, w.Body.String())
	}

	var result struct {
		Genres []string             `json:"genres"`
		Count  int                  `json:"count"`
		Movies []models.RankedMovie `json:"movies"`
	}
	if err := json.Unmarshal(envelope.Data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Count != 2 {
		t.Errorf("count = %d, want 2", result.Count)
	}
	// Lowercase input comes back canonicalized.
	if len(result.Genres) != 2 || result.Genres[0] != "Drama" {
		t.Errorf("genres = %v, want canonical [Drama Comedy]", result.Genres)
	}

	// Unknown genres are rejected before retrieval.
	w, envelope = doRequest(t, server, http.MethodPost, "/api/v1/recommendations",
		`{"genres":["Slasher"]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown genre status = %d, want 400", w.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != ErrCodeValidationFailed {
		t.Errorf("error = %+v, want VALIDATION_ERROR", envelope.Error)
	}

	// Empty genre list is rejected.
	w, _ = doRequest(t, server, http.MethodPost, "/api/v1/recommendations", `{"genres":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty genres status = %d, want 400", w.Code)
	}
}

func TestRouter_Genres(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(), newFakeCatalog(), nil)

	w, envelope := doRequest(t, server, http.MethodGet, "/api/v1/genres", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var result struct {
		Genres        []string `json:"genres"`
		Recommendable []string `json:"recommendable"`
	}
	if err := json.Unmarshal(envelope.Data, &result); err != nil {
		t.Fatalf("decode genres: %v", err)
	}
	if len(result.Genres) == 0 {
		t.Error("expected a non-empty genre vocabulary")
	}
	if len(result.Recommendable) == 0 || len(result.Recommendable) > len(result.Genres) {
		t.Errorf("recommendable = %d genres, want a non-empty subset of %d",
			len(result.Recommendable), len(result.Genres))
	}
}

// =====================================================
// Auth and Authorization
// =====================================================

func TestRouter_LoginDisabledWithoutJWT(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(), newFakeCatalog(), nil)

	w, envelope := doRequest(t, server, http.MethodPost, "/api/v1/auth/login",
		`{"username":"admin","password":"secret"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != ErrCodeAuthDisabled {
		t.Errorf("error = %+v, want AUTH_DISABLED", envelope.Error)
	}
}

func TestRouter_LoginWithJWT(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Security.AuthMode = "jwt"
	cfg.Security.JWTSecret = "0123456789abcdef0123456789abcdef"
	cfg.Security.SessionTimeout = time.Hour
	cfg.Security.AdminUsername = "admin"
	cfg.Security.AdminPassword = "swordfish-9-lives"

	server := newTestServer(t, cfg, newFakeCatalog(), nil)

	// Wrong credentials are rejected.
	w, envelope := doRequest(t, server, http.MethodPost, "/api/v1/auth/login",
		`{"username":"admin","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d, want 401\nbody: %s", w.Code, w.Body.String())
	}
	if envelope.Error == nil || envelope.Error.Code != ErrCodeInvalidCredentials {
		t.Errorf("error = %+v, want INVALID_CREDENTIALS", envelope.Error)
	}

	// Valid credentials produce a token and a cookie.
	w, envelope = doRequest(t, server, http.MethodPost, "/api/v1/auth/login",
		`{"username":"admin","password":"swordfish-9-lives"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d\nbody: %s", w.Code, w.Body.String())
	}

	var login LoginResponse
	if err := json.Unmarshal(envelope.Data, &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if login.Token == "" {
		t.Error("expected a token")
	}
	if login.Role != "admin" {
		t.Errorf("role = %q, want admin", login.Role)
	}

	var tokenCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			tokenCookie = c
		}
	}
	if tokenCookie == nil {
		t.Fatal("expected a token cookie")
	}
	if !tokenCookie.HttpOnly {
		t.Error("token cookie should be HttpOnly")
	}
}

func TestRouter_AdminDeniedForDefaultRole(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(), newFakeCatalog(), nil)

	// With auth disabled every request carries the default user role,
	// which the policy keeps away from the admin surface.
	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/diagnostics", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("diagnostics status = %d, want 403", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/seed",
		strings.NewReader(`{"movies":[]}`)))
	if w.Code != http.StatusForbidden {
		t.Errorf("seed status = %d, want 403", w.Code)
	}
}

// =====================================================
// Plumbing Endpoints
// =====================================================

func TestRouter_HealthEndpoints(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(), newFakeCatalog(), nil)

	w, envelope := doRequest(t, server, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
	var health HealthStatus
	if err := json.Unmarshal(envelope.Data, &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("status = %q, want healthy", health.Status)
	}
	if !health.CatalogConnected {
		t.Error("catalog should report connected")
	}
	if health.Mode != "standalone" {
		t.Errorf("mode = %q, want standalone without a pipeline", health.Mode)
	}

	w, _ = doRequest(t, server, http.MethodGet, "/health/live", "")
	if w.Code != http.StatusOK {
		t.Errorf("live status = %d", w.Code)
	}

	w, _ = doRequest(t, server, http.MethodGet, "/health/ready", "")
	if w.Code != http.StatusOK {
		t.Errorf("ready status = %d", w.Code)
	}
}

func TestRouter_HealthDegradedWhenCatalogDown(t *testing.T) {
	t.Parallel()

	cat := newFakeCatalog()
	cat.pingErr = errCatalogDown
	server := newTestServer(t, testConfig(), cat, nil)

	_, envelope := doRequest(t, server, http.MethodGet, "/health", "")
	var health HealthStatus
	if err := json.Unmarshal(envelope.Data, &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "degraded" {
		t.Errorf("status = %q, want degraded", health.Status)
	}

	w, _ := doRequest(t, server, http.MethodGet, "/health/ready", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503", w.Code)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(), newFakeCatalog(), nil)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("expected Prometheus exposition output")
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(), newFakeCatalog(), nil)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
