package gameweek

import "context"

// Repository describes gameweek persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Gameweek, error)
	GetByID(ctx context.Context, gameweekID string) (Gameweek, bool, error)
	GetActive(ctx context.Context) (Gameweek, bool, error)
	GetVotingOpen(ctx context.Context) (Gameweek, bool, error)
	GetLatestFinished(ctx context.Context) (Gameweek, bool, error)
	Create(ctx context.Context, item Gameweek) error
	Update(ctx context.Context, item Gameweek) error
}
