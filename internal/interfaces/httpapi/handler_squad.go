package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

type selectSquadRequest struct {
	GameweekID string   `json:"gameweek_id"`
	PlayerIDs  []string `json:"player_ids" validate:"required,dive,required"`
	CaptainID  string   `json:"captain_id" validate:"required"`
	TeamName   string   `json:"team_name" validate:"omitempty,max=60"`
}

func (h *Handler) SelectSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectSquad")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req selectSquadRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.squadService.SelectSquad(ctx, usecase.SelectSquadInput{
		UserID:     principal.UserID,
		Username:   principal.DisplayName(),
		GameweekID: strings.TrimSpace(req.GameweekID),
		PlayerIDs:  req.PlayerIDs,
		CaptainID:  strings.TrimSpace(req.CaptainID),
		TeamName:   req.TeamName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "select squad failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamViewToDTO(view))
}

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.squadService.GetMyTeam(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamViewToDTO(view))
}

func (h *Handler) GetMyTeamForGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeamForGameweek")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))

	view, err := h.squadService.GetTeamForGameweek(ctx, principal.UserID, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team for gameweek failed", "user_id", principal.UserID, "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekTeamToDTO(view))
}

func (h *Handler) GetManagerTeamForGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetManagerTeamForGameweek")
	defer span.End()

	username := strings.TrimSpace(r.PathValue("username"))
	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))

	view, err := h.squadService.GetTeamForManager(ctx, username, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get manager team failed", "username", username, "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekTeamToDTO(view))
}

func (h *Handler) GetMyHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyHistory")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	selections, err := h.squadService.History(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team history failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]selectionDTO, 0, len(selections))
	for _, s := range selections {
		items = append(items, selectionToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
