package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	standings, err := h.leaderboardService.Global(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(standings))
}

type createMiniLeagueRequest struct {
	Name string `json:"name" validate:"required,max=60"`
}

func (h *Handler) CreateMiniLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMiniLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createMiniLeagueRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.miniLeagueService.CreateLeague(ctx, principal.UserID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "create mini league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, miniLeagueToDTO(item))
}

type joinMiniLeagueRequest struct {
	JoinCode string `json:"join_code" validate:"required"`
}

func (h *Handler) JoinMiniLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinMiniLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinMiniLeagueRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.miniLeagueService.JoinLeague(ctx, principal.UserID, req.JoinCode)
	if err != nil {
		h.logger.WarnContext(ctx, "join mini league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, miniLeagueToDTO(item))
}

func (h *Handler) ListMyMiniLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyMiniLeagues")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagues, err := h.miniLeagueService.ListMyLeagues(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list mini leagues failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]miniLeagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, miniLeagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMiniLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMiniLeagueStandings")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	league, standings, err := h.miniLeagueService.Standings(ctx, principal.UserID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get mini league standings failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, miniLeagueStandingsDTO{
		League:    miniLeagueToDTO(league),
		Standings: standingsToDTO(standings),
	})
}
