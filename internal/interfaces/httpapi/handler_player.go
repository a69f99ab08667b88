package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	players, err := h.playerService.ListPlayers(ctx, usecase.ListPlayersInput{
		Position: strings.TrimSpace(query.Get("position")),
		Search:   strings.TrimSpace(query.Get("search")),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

type createPlayerRequest struct {
	Name     string   `json:"name" validate:"required,max=80"`
	Position string   `json:"position" validate:"required"`
	TeamName string   `json:"team_name" validate:"omitempty,max=80"`
	Price    *float64 `json:"price" validate:"omitempty,gt=0"`
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.CreatePlayerInput{
		Name:     req.Name,
		Position: req.Position,
		TeamName: req.TeamName,
	}
	if req.Price != nil {
		price := priceToTenths(*req.Price)
		input.Price = &price
	}

	item, err := h.playerService.CreatePlayer(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

type updatePlayerRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=80"`
	Position *string  `json:"position"`
	TeamName *string  `json:"team_name" validate:"omitempty,max=80"`
	Price    *float64 `json:"price" validate:"omitempty,gt=0"`
	IsActive *bool    `json:"is_active"`
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req updatePlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdatePlayerInput{
		PlayerID: playerID,
		Name:     req.Name,
		Position: req.Position,
		TeamName: req.TeamName,
		IsActive: req.IsActive,
	}
	if req.Price != nil {
		price := priceToTenths(*req.Price)
		input.Price = &price
	}

	item, err := h.playerService.UpdatePlayer(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.playerService.DeactivatePlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "deactivate player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}
