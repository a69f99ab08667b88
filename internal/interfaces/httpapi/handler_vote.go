package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

type submitVoteRequest struct {
	FirstID  string `json:"first_id" validate:"required"`
	SecondID string `json:"second_id" validate:"required"`
	ThirdID  string `json:"third_id" validate:"required"`
}

func (h *Handler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitVote")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))

	var req submitVoteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.voteService.SubmitVote(ctx, usecase.SubmitVoteInput{
		UserID:     principal.UserID,
		GameweekID: gameweekID,
		FirstID:    strings.TrimSpace(req.FirstID),
		SecondID:   strings.TrimSpace(req.SecondID),
		ThirdID:    strings.TrimSpace(req.ThirdID),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit vote failed", "user_id", principal.UserID, "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, voteToDTO(item))
}

func (h *Handler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyVote")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))

	item, exists, err := h.voteService.MyVote(ctx, principal.UserID, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my vote failed", "user_id", principal.UserID, "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := myVoteDTO{HasVoted: exists}
	if exists {
		v := voteToDTO(item)
		out.Vote = &v
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetVoteResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetVoteResults")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	lines, err := h.voteService.Results(ctx, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get vote results failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, voteResultsToDTO(lines))
}

type closeVotingRequest struct {
	AwardMVP *bool `json:"award_mvp"`
}

// CloseVoting awards the MVP unless the body sets award_mvp to false.
func (h *Handler) CloseVoting(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseVoting")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))

	var req closeVotingRequest
	if err := h.decodeOptionalRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	award := req.AwardMVP == nil || *req.AwardMVP

	result, err := h.voteService.CloseVoting(ctx, gameweekID, award)
	if err != nil {
		h.logger.WarnContext(ctx, "close voting failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, closeVotingDTO{
		Gameweek:    gameweekToDTO(result.Gameweek),
		Results:     voteResultsToDTO(result.Results),
		MVPPlayerID: result.MVPPlayerID,
		Awarded:     result.Awarded,
	})
}
