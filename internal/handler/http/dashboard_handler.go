package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/corner-alert-service/internal/service"
)

const defaultAlertsLimit = 50

// DashboardHandler handles HTTP requests for the live dashboard and alert
// history
type DashboardHandler struct {
	dashboard *service.DashboardService
	store     service.AlertStore
	logger    zerolog.Logger
}

// NewDashboardHandler creates a new dashboard HTTP handler
func NewDashboardHandler(dashboard *service.DashboardService, store service.AlertStore, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		store:     store,
		logger:    logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	// GET /api/v1/matches - currently tracked matches with scores
	mux.HandleFunc("/api/v1/matches", h.handleGetMatches)

	// GET /api/v1/alerts?limit=N - recent alerts with outcomes
	mux.HandleFunc("/api/v1/alerts", h.handleGetAlerts)

	// GET /api/v1/performance - aggregate win/loss record
	mux.HandleFunc("/api/v1/performance", h.handleGetPerformance)
}

// handleGetMatches handles GET /api/v1/matches
func (h *DashboardHandler) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snapshot, err := h.dashboard.GetDashboard(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build dashboard")
		h.errorResponse(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}

	h.jsonResponse(w, http.StatusOK, snapshot)
}

// handleGetAlerts handles GET /api/v1/alerts
func (h *DashboardHandler) handleGetAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := defaultAlertsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	alerts, err := h.store.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load recent alerts")
		h.errorResponse(w, http.StatusInternalServerError, "failed to load alerts")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

// handleGetPerformance handles GET /api/v1/performance
func (h *DashboardHandler) handleGetPerformance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	perf, err := h.store.PerformanceStats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute performance stats")
		h.errorResponse(w, http.StatusInternalServerError, "failed to compute performance")
		return
	}

	h.jsonResponse(w, http.StatusOK, perf)
}

// jsonResponse writes a JSON response
func (h *DashboardHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *DashboardHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
