package vote

import (
	"context"
	"errors"
)

var ErrAlreadyVoted = errors.New("user already voted for this gameweek")

// Repository describes vote persistence needs from use cases.
// Create returns ErrAlreadyVoted when (gameweek, user) exists.
type Repository interface {
	Create(ctx context.Context, item Vote) error
	GetByUser(ctx context.Context, gameweekID, userID string) (Vote, bool, error)
	ListByGameweek(ctx context.Context, gameweekID string) ([]Vote, error)
}
