package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-five/internal/domain/user"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

type Handler struct {
	playerService      *usecase.PlayerService
	gameweekService    *usecase.GameweekService
	matchStatService   *usecase.MatchStatService
	squadService       *usecase.SquadService
	leaderboardService *usecase.LeaderboardService
	miniLeagueService  *usecase.MiniLeagueService
	voteService        *usecase.VoteService
	settingsService    *usecase.SettingsService
	dashboardService   *usecase.DashboardService
	reconcileService   *usecase.ReconcileService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	gameweekService *usecase.GameweekService,
	matchStatService *usecase.MatchStatService,
	squadService *usecase.SquadService,
	leaderboardService *usecase.LeaderboardService,
	miniLeagueService *usecase.MiniLeagueService,
	voteService *usecase.VoteService,
	settingsService *usecase.SettingsService,
	dashboardService *usecase.DashboardService,
	reconcileService *usecase.ReconcileService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:      playerService,
		gameweekService:    gameweekService,
		matchStatService:   matchStatService,
		squadService:       squadService,
		leaderboardService: leaderboardService,
		miniLeagueService:  miniLeagueService,
		voteService:        voteService,
		settingsService:    settingsService,
		dashboardService:   dashboardService,
		reconcileService:   reconcileService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %w", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest decodes a strict JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

// decodeOptionalRequest accepts an empty body and leaves dst untouched.
func (h *Handler) decodeOptionalRequest(ctx context.Context, r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return h.validateRequest(ctx, dst)
	}
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

// Prices travel as decimals (5.5) and are stored in tenths (55).
func priceToDecimal(tenths int64) float64 {
	return float64(tenths) / 10
}

func priceToTenths(v float64) int64 {
	return int64(math.Round(v * 10))
}
