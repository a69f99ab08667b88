package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetDashboardHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboardHighlights")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	highlights, err := h.dashboardService.Highlights(ctx, principal)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard highlights failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardHighlightsToDTO(highlights))
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSettings")
	defer span.End()

	item, err := h.settingsService.GetSettings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(item))
}

type updateSettingsRequest struct {
	AllowTransfers     *bool `json:"allow_transfers"`
	ShowDashboardStats *bool `json:"show_dashboard_stats"`
	MaintenanceMode    *bool `json:"maintenance_mode"`
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSettings")
	defer span.End()

	var req updateSettingsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.settingsService.UpdateSettings(ctx, usecase.UpdateSettingsInput{
		AllowTransfers:     req.AllowTransfers,
		ShowDashboardStats: req.ShowDashboardStats,
		MaintenanceMode:    req.MaintenanceMode,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "update settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(item))
}
