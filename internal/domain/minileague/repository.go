package minileague

import "context"

// Repository describes mini league persistence needs from use cases.
// Create returns ErrDuplicateCode on a code collision; AddMember returns
// ErrAlreadyMember when the membership exists.
type Repository interface {
	Create(ctx context.Context, item League) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetByCode(ctx context.Context, joinCode string) (League, bool, error)
	ListByMember(ctx context.Context, userID string) ([]League, error)
	AddMember(ctx context.Context, membership Membership) error
	IsMember(ctx context.Context, leagueID, userID string) (bool, error)
	ListMemberIDs(ctx context.Context, leagueID string) ([]string, error)
}
