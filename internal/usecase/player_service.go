package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	idgen "github.com/riskibarqy/fantasy-five/internal/platform/id"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

type ListPlayersInput struct {
	Position        string
	Search          string
	IncludeInactive bool
}

type CreatePlayerInput struct {
	Name     string
	Position string
	TeamName string
	Price    *int64
}

// UpdatePlayerInput carries optional fields; nil leaves the value unchanged.
type UpdatePlayerInput struct {
	PlayerID string
	Name     *string
	Position *string
	TeamName *string
	Price    *int64
	IsActive *bool
}

type PlayerService struct {
	playerRepo player.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, idGen idgen.Generator, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context, input ListPlayersInput) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	filter := player.Filter{IncludeInactive: input.IncludeInactive}
	if raw := strings.TrimSpace(input.Position); raw != "" {
		pos, err := player.ParsePosition(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		filter.Position = pos
	}

	items, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return searchPlayersByName(items, input.Search), nil
}

// searchPlayersByName keeps fuzzy matches and orders them by edit distance.
func searchPlayersByName(items []player.Player, search string) []player.Player {
	search = strings.TrimSpace(search)
	if search == "" {
		return items
	}

	type match struct {
		item     player.Player
		distance int
	}
	matches := make([]match, 0, len(items))
	for _, item := range items {
		if !fuzzy.MatchNormalizedFold(search, item.Name) {
			continue
		}
		distance := fuzzy.LevenshteinDistance(strings.ToLower(search), strings.ToLower(item.Name))
		matches = append(matches, match{item: item, distance: distance})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	out := make([]player.Player, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.item)
	}
	return out
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	return getPlayer(ctx, s.playerRepo, playerID)
}

func (s *PlayerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	pos, err := player.ParsePosition(input.Position)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	price := player.DefaultPrice
	if input.Price != nil {
		price = *input.Price
	}

	now := s.now().UTC()
	item := player.Player{
		ID:        id,
		Name:      strings.TrimSpace(input.Name),
		Position:  pos,
		TeamName:  strings.TrimSpace(input.TeamName),
		Price:     price,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created",
		"player_id", item.ID,
		"position", string(item.Position),
		"price", item.Price,
	)

	return item, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdatePlayer")
	defer span.End()

	item, err := s.GetPlayer(ctx, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Position != nil {
		pos, err := player.ParsePosition(*input.Position)
		if err != nil {
			return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		item.Position = pos
	}
	if input.TeamName != nil {
		item.TeamName = strings.TrimSpace(*input.TeamName)
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	item.UpdatedAt = s.now().UTC()

	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	return item, nil
}

// DeactivatePlayer hides a player from selection. Players are never deleted.
func (s *PlayerService) DeactivatePlayer(ctx context.Context, playerID string) (player.Player, error) {
	inactive := false
	return s.UpdatePlayer(ctx, UpdatePlayerInput{PlayerID: playerID, IsActive: &inactive})
}

// loadPlayersByID fetches ids and fails with ErrInvalidInput when any is missing.
func loadPlayersByID(ctx context.Context, repo player.Repository, ids []string) (map[string]player.Player, error) {
	items, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	byID := make(map[string]player.Player, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: unknown players %s", ErrInvalidInput, strings.Join(missing, ","))
	}
	return byID, nil
}
