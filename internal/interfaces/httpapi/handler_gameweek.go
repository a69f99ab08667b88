package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

func (h *Handler) ListGameweeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameweeks")
	defer span.End()

	items, err := h.gameweekService.ListGameweeks(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list gameweeks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]gameweekDTO, 0, len(items))
	for _, gw := range items {
		out = append(out, gameweekToDTO(gw))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetActiveGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveGameweek")
	defer span.End()

	gw, err := h.gameweekService.GetActiveGameweek(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(gw))
}

type createGameweekRequest struct {
	Number   int       `json:"number" validate:"required,gt=0"`
	Name     string    `json:"name" validate:"omitempty,max=60"`
	Deadline time.Time `json:"deadline" validate:"required"`
}

func (h *Handler) CreateGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGameweek")
	defer span.End()

	var req createGameweekRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gw, err := h.gameweekService.CreateGameweek(ctx, usecase.CreateGameweekInput{
		Number:   req.Number,
		Name:     req.Name,
		Deadline: req.Deadline,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create gameweek failed", "number", req.Number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameweekToDTO(gw))
}

func (h *Handler) ActivateGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateGameweek")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	result, err := h.gameweekService.ActivateGameweek(ctx, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "activate gameweek failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, activateResultDTO{
		Gameweek:   gameweekToDTO(result.Gameweek),
		RolledOver: result.RolledOver,
	})
}

func (h *Handler) CalculateGameweekPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CalculateGameweekPoints")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	result, err := h.gameweekService.CalculatePoints(ctx, gameweekID)
	if err != nil {
		h.logger.ErrorContext(ctx, "calculate gameweek points failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, calculateResultToDTO(result))
}

func (h *Handler) OpenVoting(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenVoting")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	gw, err := h.gameweekService.OpenVoting(ctx, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "open voting failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(gw))
}
