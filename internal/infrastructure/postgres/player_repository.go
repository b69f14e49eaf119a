package postgres

import (
	"context"
	"errors"

	domain "github.com/RealMosam/SEMS/internal/domain/player"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PlayerRepository persists players in PostgreSQL.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

// NewPlayerRepository constructs a repository.
func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

const playerColumns = `id, sport_id, name, age, contact_number, email, gender, created_at, updated_at`

// Create inserts a new player.
func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	const query = `
INSERT INTO players (` + playerColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.pool.Exec(ctx, query,
		player.ID,
		player.SportID,
		player.Name,
		player.Age,
		player.ContactNumber,
		player.Email,
		player.Gender,
		player.CreatedAt,
		player.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID fetches a player by id.
func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	player, err := scanPlayer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return player, nil
}

// List returns all players in registration order.
func (r *PlayerRepository) List(ctx context.Context) ([]*domain.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players ORDER BY created_at ASC, name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []*domain.Player{}
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

// Update writes player changes to the database.
func (r *PlayerRepository) Update(ctx context.Context, player *domain.Player) error {
	const query = `
UPDATE players
SET sport_id = $2,
    name = $3,
    age = $4,
    contact_number = $5,
    email = $6,
    gender = $7,
    updated_at = $8
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, query,
		player.ID,
		player.SportID,
		player.Name,
		player.Age,
		player.ContactNumber,
		player.Email,
		player.Gender,
		player.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a player by id.
func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM players WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.ID,
		&p.SportID,
		&p.Name,
		&p.Age,
		&p.ContactNumber,
		&p.Email,
		&p.Gender,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ domain.Repository = (*PlayerRepository)(nil)
