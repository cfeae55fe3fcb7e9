package api

import (
	"log/slog"
	"net/http"

	"github.com/donmarco3/Book-Brain/internal/api/shared"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/service"
	"github.com/donmarco3/Book-Brain/pkg/schema"
)

// SettingsHandler serves per-user settings and reading stats.
type SettingsHandler struct {
	settings service.SettingsService
	stats    service.StatsService
	logger   *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(
	settings service.SettingsService,
	stats service.StatsService,
	logger *slog.Logger,
) *SettingsHandler {
	if settings == nil || stats == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("settings and stats services cannot be nil for SettingsHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsHandler{
		settings: settings,
		stats:    stats,
		logger:   logger.With(slog.String("component", "settings_handler")),
	}
}

// GetSettings handles GET /api/settings.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	settings, err := h.settings.GetSettings(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req schema.UpdateSettingsRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	settings, err := h.settings.UpdateSettings(r.Context(), userID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// GetStats handles GET /api/stats.
func (h *SettingsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	stats, err := h.stats.GetStats(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute stats")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, schema.StatsResponse{
		TotalBooks:     stats.TotalBooks,
		TotalCards:     stats.TotalCards,
		Streak:         stats.Streak,
		CardsThisWeek:  stats.CardsThisWeek,
		CardsThisMonth: stats.CardsThisMonth,
		CardsThisYear:  stats.CardsThisYear,
	})
}

// Health handles GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, schema.HealthResponse{Status: "ok"})
}
