package matchstat

import "context"

// Repository describes match stat persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, item Entry) error
	Get(ctx context.Context, gameweekID, playerID string) (Entry, bool, error)
	ListByGameweek(ctx context.Context, gameweekID string) ([]Entry, error)
	SumPointsByPlayer(ctx context.Context, playerID string) (int, error)
	TotalsByPlayer(ctx context.Context) (map[string]int, error)
}
