package player

import "context"

// Repository defines persistence behaviours for players.
type Repository interface {
	Create(ctx context.Context, player *Player) error
	GetByID(ctx context.Context, id string) (*Player, error)
	List(ctx context.Context) ([]*Player, error)
	Update(ctx context.Context, player *Player) error
	Delete(ctx context.Context, id string) error
}
