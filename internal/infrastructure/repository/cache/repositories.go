package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	"github.com/riskibarqy/fantasy-five/internal/domain/settings"
	basecache "github.com/riskibarqy/fantasy-five/internal/platform/cache"
)

const (
	playerPrefix   = "player:"
	gameweekPrefix = "gameweek:"
	settingsKey    = "settings"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	key := playerPrefix + "list:" + string(filter.Position)
	if filter.IncludeInactive {
		key += ":all"
	}
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, playerPrefix+"id:"+playerID, func(ctx context.Context) (cachedPlayerByID, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return cachedPlayerByID{}, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := playerPrefix + "ids:" + strings.Join(ids, ",")
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	defer r.cache.DeletePrefix(ctx, playerPrefix)
	return r.next.Create(ctx, item)
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	defer r.cache.DeletePrefix(ctx, playerPrefix)
	return r.next.Update(ctx, item)
}

func (r *PlayerRepository) UpdateTotalPoints(ctx context.Context, playerID string, total int) error {
	defer r.cache.DeletePrefix(ctx, playerPrefix)
	return r.next.UpdateTotalPoints(ctx, playerID, total)
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

// GameweekRepository caches lookups by id and the active gameweek, which is
// read on every squad request.
type GameweekRepository struct {
	next  gameweek.Repository
	cache *basecache.Store
}

func NewGameweekRepository(next gameweek.Repository, cache *basecache.Store) *GameweekRepository {
	return &GameweekRepository{next: next, cache: cache}
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	items, err := basecache.Load(ctx, r.cache, gameweekPrefix+"list", func(ctx context.Context) ([]gameweek.Gameweek, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return append([]gameweek.Gameweek(nil), items...), nil
}

func (r *GameweekRepository) GetByID(ctx context.Context, gameweekID string) (gameweek.Gameweek, bool, error) {
	return r.loadOne(ctx, gameweekPrefix+"id:"+gameweekID, func(ctx context.Context) (gameweek.Gameweek, bool, error) {
		return r.next.GetByID(ctx, gameweekID)
	})
}

func (r *GameweekRepository) GetActive(ctx context.Context) (gameweek.Gameweek, bool, error) {
	return r.loadOne(ctx, gameweekPrefix+"active", r.next.GetActive)
}

func (r *GameweekRepository) GetVotingOpen(ctx context.Context) (gameweek.Gameweek, bool, error) {
	return r.loadOne(ctx, gameweekPrefix+"voting", r.next.GetVotingOpen)
}

func (r *GameweekRepository) GetLatestFinished(ctx context.Context) (gameweek.Gameweek, bool, error) {
	return r.loadOne(ctx, gameweekPrefix+"finished", r.next.GetLatestFinished)
}

func (r *GameweekRepository) Create(ctx context.Context, item gameweek.Gameweek) error {
	defer r.cache.DeletePrefix(ctx, gameweekPrefix)
	return r.next.Create(ctx, item)
}

func (r *GameweekRepository) Update(ctx context.Context, item gameweek.Gameweek) error {
	defer r.cache.DeletePrefix(ctx, gameweekPrefix)
	return r.next.Update(ctx, item)
}

func (r *GameweekRepository) loadOne(
	ctx context.Context,
	key string,
	loader func(context.Context) (gameweek.Gameweek, bool, error),
) (gameweek.Gameweek, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedGameweek, error) {
		item, exists, err := loader(ctx)
		if err != nil {
			return cachedGameweek{}, err
		}
		return cachedGameweek{value: item, exists: exists}, nil
	})
	if err != nil {
		return gameweek.Gameweek{}, false, err
	}
	return cached.value, cached.exists, nil
}

type cachedGameweek struct {
	value  gameweek.Gameweek
	exists bool
}

type SettingsRepository struct {
	next  settings.Repository
	cache *basecache.Store
}

func NewSettingsRepository(next settings.Repository, cache *basecache.Store) *SettingsRepository {
	return &SettingsRepository{next: next, cache: cache}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	return basecache.Load(ctx, r.cache, settingsKey, r.next.Get)
}

func (r *SettingsRepository) Save(ctx context.Context, item settings.Settings) error {
	defer r.cache.Delete(ctx, settingsKey)
	return r.next.Save(ctx, item)
}
