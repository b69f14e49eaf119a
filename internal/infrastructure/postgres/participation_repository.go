package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/RealMosam/SEMS/internal/domain/participation"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ParticipationRepository persists participations in PostgreSQL.
type ParticipationRepository struct {
	pool *pgxpool.Pool
}

// NewParticipationRepository constructs a repository.
func NewParticipationRepository(pool *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{pool: pool}
}

const participationColumns = `id, player_id, event_id, status, created_by, created_at, updated_at`

// Create inserts a participation. The (player_id, event_id) constraint rejects duplicates.
func (r *ParticipationRepository) Create(ctx context.Context, p *domain.Participation) error {
	const query = `
INSERT INTO participations (` + participationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.PlayerID,
		p.EventID,
		p.Status,
		p.CreatedBy,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByID fetches a participation by id.
func (r *ParticipationRepository) GetByID(ctx context.Context, id string) (*domain.Participation, error) {
	const query = `SELECT ` + participationColumns + ` FROM participations WHERE id = $1`
	p, err := scanParticipation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns participations matching the filter.
func (r *ParticipationRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Participation, error) {
	query, args := buildListQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.Participation{}
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// Decide applies d in one transaction. Every row of the event is locked
// before the approved count is taken, so concurrent approvals serialise.
func (r *ParticipationRepository) Decide(ctx context.Context, id string, d domain.Decision) (*domain.Participation, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin decide: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var eventID int
	if err := tx.QueryRow(ctx, `SELECT event_id FROM participations WHERE id = $1`, id).Scan(&eventID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := tx.Query(ctx, lockEventQuery, eventID)
	if err != nil {
		return nil, err
	}
	var (
		current  domain.Status
		found    bool
		approved int
	)
	for rows.Next() {
		var (
			rowID  string
			status domain.Status
		)
		if err := rows.Scan(&rowID, &status); err != nil {
			rows.Close()
			return nil, err
		}
		if rowID == id {
			current, found = status, true
		}
		if status == domain.StatusApproved {
			approved++
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := checkDecision(current, found, approved, d); err != nil {
		return nil, err
	}

	p, err := scanParticipation(tx.QueryRow(ctx, decideQuery, id, d.Status, d.At))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit decide: %w", err)
	}
	return p, nil
}

const lockEventQuery = `SELECT id, status FROM participations WHERE event_id = $1 ORDER BY id FOR UPDATE`

const decideQuery = `
UPDATE participations SET status = $2, updated_at = $3
WHERE id = $1 AND status = 'pending'
RETURNING ` + participationColumns

// checkDecision validates d against the locked state of the event.
func checkDecision(current domain.Status, found bool, approved int, d domain.Decision) error {
	if !found {
		return domain.ErrNotFound
	}
	if !current.CanTransition(d.Status) {
		return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, current, d.Status)
	}
	if d.Status == domain.StatusApproved && d.Slots > 0 && approved >= d.Slots {
		return domain.ErrEventFull
	}
	return nil
}

// Delete removes a participation by id.
func (r *ParticipationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM participations WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func buildListQuery(filter domain.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.PlayerID != "" {
		args = append(args, filter.PlayerID)
		conds = append(conds, fmt.Sprintf("player_id = $%d", len(args)))
	}
	if filter.EventID != 0 {
		args = append(args, filter.EventID)
		conds = append(conds, fmt.Sprintf("event_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + participationColumns + ` FROM participations`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"
	return query, args
}

func scanParticipation(row pgx.Row) (*domain.Participation, error) {
	var p domain.Participation
	err := row.Scan(
		&p.ID,
		&p.PlayerID,
		&p.EventID,
		&p.Status,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ domain.Repository = (*ParticipationRepository)(nil)
