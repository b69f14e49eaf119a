package sport

import "context"

// Repository exposes the read-only catalog.
type Repository interface {
	ListSports(ctx context.Context) ([]*Sport, error)
	GetSport(ctx context.Context, id int) (*Sport, error)
	GetSportByName(ctx context.Context, name string) (*Sport, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id int) (*Event, error)
}
