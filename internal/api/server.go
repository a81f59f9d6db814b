// Package api provides the HTTP surface for the matching service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vietddude/matchboard/internal/datastore"
	"github.com/vietddude/matchboard/internal/service"
)

// Server exposes recommendations, scoring, proposals, analytics,
// network status, health, and metrics over HTTP.
type Server struct {
	svc    *service.MatchService
	server *http.Server
}

// NewServer creates the API server on the given port.
func NewServer(svc *service.MatchService, port int) *Server {
	mux := http.NewServeMux()
	s := &Server{
		svc: svc,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           logRequests(mux),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	mux.HandleFunc("GET /v1/influencers/{id}/recommendations", s.handleRecommendations)
	mux.HandleFunc("GET /v1/match-score", s.handleMatchScore)
	mux.HandleFunc("POST /v1/proposals/draft", s.handleDraftProposal)
	mux.HandleFunc("GET /v1/network", s.handleNetwork)
	mux.HandleFunc("GET /v1/analytics/campaigns", s.handleAnalytics)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the configured handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	set, err := s.svc.GetRecommendedCampaigns(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleMatchScore(w http.ResponseWriter, r *http.Request) {
	campaignID := r.URL.Query().Get("campaign_id")
	influencerID := r.URL.Query().Get("influencer_id")
	if campaignID == "" || influencerID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "campaign_id and influencer_id are required",
		})
		return
	}

	result, err := s.svc.GetMatchScore(r.Context(), campaignID, influencerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDraftProposal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CampaignID   string `json:"campaign_id"`
		InfluencerID string `json:"influencer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.CampaignID == "" || req.InfluencerID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "campaign_id and influencer_id are required",
		})
		return
	}

	p, err := s.svc.DraftProposal(r.Context(), req.CampaignID, req.InfluencerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "1" {
		writeJSON(w, http.StatusOK, s.svc.RefreshNetworkStatus(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, s.svc.NetworkStatus())
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.CampaignAnalytics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.svc.NetworkStatus()

	status := "healthy"
	code := http.StatusOK
	if !state.IsOnline || !state.IsServiceReachable {
		// Degraded, not down: reads still serve from the cache.
		status = "degraded"
	}

	writeJSON(w, code, map[string]any{
		"status":  status,
		"network": state,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var re *datastore.RequestError
	switch {
	case errors.Is(err, datastore.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.As(err, &re):
		code := re.Status
		if code < 400 || code > 499 {
			code = http.StatusBadRequest
		}
		writeJSON(w, code, map[string]string{"error": re.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// logRequests logs one line per request with a generated request ID.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)

		slog.Debug("Request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
