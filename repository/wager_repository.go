package repository

import (
	"context"
	"fmt"

	"betbook/database"
	"betbook/domain/entities"

	"github.com/jackc/pgx/v5"
)

const wagerColumns = `
	id, description, amount, creator_id, opponent_id, arbiter_id,
	proposed_arbiter_id, winner_id, status, is_public, created_at, updated_at`

// WagerRepository implements wager data access
type WagerRepository struct {
	q Queryable
}

// NewWagerRepository creates a new wager repository
func NewWagerRepository(db *database.DB) *WagerRepository {
	return &WagerRepository{q: db.Pool}
}

// newWagerRepositoryWithTx creates a new wager repository bound to a transaction
func newWagerRepositoryWithTx(tx Queryable) *WagerRepository {
	return &WagerRepository{q: tx}
}

// Create creates a new wager
func (r *WagerRepository) Create(ctx context.Context, wager *entities.Wager) error {
	query := `
		INSERT INTO wagers (
			description, amount, creator_id, opponent_id, arbiter_id,
			proposed_arbiter_id, winner_id, status, is_public
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		wager.Description,
		wager.Amount,
		wager.CreatorID,
		wager.OpponentID,
		wager.ArbiterID,
		wager.ProposedArbiterID,
		wager.WinnerID,
		wager.Status,
		wager.IsPublic,
	).Scan(&wager.ID, &wager.CreatedAt, &wager.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create wager: %w", markConflict(err))
	}

	return nil
}

// GetByID retrieves a wager by its ID
func (r *WagerRepository) GetByID(ctx context.Context, id int64) (*entities.Wager, error) {
	query := `SELECT` + wagerColumns + `
		FROM wagers
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate retrieves a wager by its ID holding a row lock until the
// surrounding transaction ends. Concurrent transitions on the same wager
// serialize on this lock; the loser revalidates against the committed state.
func (r *WagerRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Wager, error) {
	query := `SELECT` + wagerColumns + `
		FROM wagers
		WHERE id = $1
		FOR UPDATE
	`
	return r.getOne(ctx, query, id)
}

func (r *WagerRepository) getOne(ctx context.Context, query string, id int64) (*entities.Wager, error) {
	var wager entities.Wager
	err := r.q.QueryRow(ctx, query, id).Scan(
		&wager.ID,
		&wager.Description,
		&wager.Amount,
		&wager.CreatorID,
		&wager.OpponentID,
		&wager.ArbiterID,
		&wager.ProposedArbiterID,
		&wager.WinnerID,
		&wager.Status,
		&wager.IsPublic,
		&wager.CreatedAt,
		&wager.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wager %d: %w", id, markConflict(err))
	}

	return &wager, nil
}

// Update persists the wager's status and mutable reference fields.
// Description, amount, creator and the public flag are immutable after
// creation and deliberately absent from the statement.
func (r *WagerRepository) Update(ctx context.Context, wager *entities.Wager) error {
	query := `
		UPDATE wagers
		SET status = $2,
		    opponent_id = $3,
		    arbiter_id = $4,
		    proposed_arbiter_id = $5,
		    winner_id = $6,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		wager.ID,
		wager.Status,
		wager.OpponentID,
		wager.ArbiterID,
		wager.ProposedArbiterID,
		wager.WinnerID,
	)

	if err != nil {
		return fmt.Errorf("failed to update wager %d: %w", wager.ID, markConflict(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: wager %d", entities.ErrNotFound, wager.ID)
	}

	return nil
}

// ListByParticipant returns all wagers where the user is creator or opponent,
// newest first
func (r *WagerRepository) ListByParticipant(ctx context.Context, userID int64) ([]*entities.Wager, error) {
	query := `SELECT` + wagerColumns + `
		FROM wagers
		WHERE creator_id = $1 OR opponent_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

// ListByArbiter returns accepted wagers assigned to the arbiter. With
// includeUnassigned, accepted wagers that fall to the default arbiter are
// included as well. Only funded wagers needing judgment are surfaced.
func (r *WagerRepository) ListByArbiter(ctx context.Context, arbiterID int64, includeUnassigned bool) ([]*entities.Wager, error) {
	query := `SELECT` + wagerColumns + `
		FROM wagers
		WHERE status = 'accepted'
		  AND (arbiter_id = $1 OR (arbiter_id IS NULL AND $2))
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, arbiterID, includeUnassigned)
}

// ListPublicOpen returns public pending wagers awaiting an opponent
func (r *WagerRepository) ListPublicOpen(ctx context.Context) ([]*entities.Wager, error) {
	query := `SELECT` + wagerColumns + `
		FROM wagers
		WHERE is_public AND opponent_id IS NULL AND status = 'pending'
		ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}

// ListSettled returns all settled wagers
func (r *WagerRepository) ListSettled(ctx context.Context) ([]*entities.Wager, error) {
	query := `SELECT` + wagerColumns + `
		FROM wagers
		WHERE status = 'settled'
		ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}

func (r *WagerRepository) list(ctx context.Context, query string, args ...any) ([]*entities.Wager, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list wagers: %w", markConflict(err))
	}
	defer rows.Close()

	var wagers []*entities.Wager
	for rows.Next() {
		var wager entities.Wager
		err := rows.Scan(
			&wager.ID,
			&wager.Description,
			&wager.Amount,
			&wager.CreatorID,
			&wager.OpponentID,
			&wager.ArbiterID,
			&wager.ProposedArbiterID,
			&wager.WinnerID,
			&wager.Status,
			&wager.IsPublic,
			&wager.CreatedAt,
			&wager.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		wagers = append(wagers, &wager)
	}

	return wagers, rows.Err()
}
