package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-five/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

func (h *Handler) GetScoringRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringRules")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.matchStatService.ScoringRules())
}

// decodeStatRequest reports counter violations on the embedded stat as
// invalid stats rather than generic input errors.
func (h *Handler) decodeStatRequest(ctx context.Context, r *http.Request, dst any) error {
	err := h.decodeRequest(ctx, r, dst)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if strings.Contains(fe.StructNamespace(), ".Stat.") {
			return fmt.Errorf("%w: %w", usecase.ErrInvalidStat, err)
		}
	}
	return err
}

type previewPointsRequest struct {
	Position string `json:"position" validate:"required"`
	scoring.Stat
}

func (h *Handler) PreviewPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewPoints")
	defer span.End()

	var req previewPointsRequest
	if err := h.decodeStatRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	breakdown, err := h.matchStatService.PreviewPoints(req.Stat, req.Position)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, breakdown)
}

type submitMatchStatRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Force    bool   `json:"force"`
	scoring.Stat
}

func (h *Handler) SubmitMatchStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitMatchStat")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))

	var req submitMatchStatRequest
	if err := h.decodeStatRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.matchStatService.SubmitMatchStat(ctx, usecase.SubmitMatchStatInput{
		GameweekID: gameweekID,
		PlayerID:   strings.TrimSpace(req.PlayerID),
		Stat:       req.Stat,
		Force:      req.Force,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit match stat failed", "gameweek_id", gameweekID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchStatToDTO(entry))
}

func (h *Handler) ListGameweekStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameweekStats")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	lines, err := h.matchStatService.ListGameweekStats(ctx, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "list gameweek stats failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]statLineDTO, 0, len(lines))
	for _, line := range lines {
		items = append(items, statLineDTO{
			Player: playerToDTO(line.Player),
			Stat:   line.Entry.Stat,
			Points: line.Entry.Points,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPointsBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPointsBreakdown")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	got, err := h.matchStatService.GetPointsBreakdown(ctx, gameweekID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get points breakdown failed", "gameweek_id", gameweekID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, breakdownDTO{
		GameweekID: gameweekID,
		Player:     playerToDTO(got.Player),
		Stat:       got.Entry.Stat,
		Items:      got.Breakdown.Items,
		Total:      got.Breakdown.Total,
		Points:     got.Breakdown.Points,
	})
}
