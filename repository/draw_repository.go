package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lotto/database"
	"lotto/domain/entities"
	"lotto/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// DrawRepository implements the DrawRepository interface
type DrawRepository struct {
	q Queryable
}

// NewDrawRepository creates a new draw repository
func NewDrawRepository(db *database.DB) *DrawRepository {
	return &DrawRepository{q: db.Pool}
}

func newDrawRepository(tx Queryable) interfaces.DrawRepository {
	return &DrawRepository{q: tx}
}

const drawColumns = `
	id, game_id, draw_number, scheduled_at, status,
	winning_main, winning_special, jackpot_cents, total_sales_cents,
	winners_count, total_payout_cents, division_results, completed_at, created_at
`

func scanDraw(row pgx.Row) (*entities.Draw, error) {
	var draw entities.Draw
	var rawResults []byte

	err := row.Scan(
		&draw.ID,
		&draw.GameID,
		&draw.DrawNumber,
		&draw.ScheduledAt,
		&draw.Status,
		&draw.WinningMain,
		&draw.WinningSpecial,
		&draw.JackpotCents,
		&draw.TotalSalesCents,
		&draw.WinnersCount,
		&draw.TotalPayoutCents,
		&rawResults,
		&draw.CompletedAt,
		&draw.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(rawResults) > 0 {
		if err := json.Unmarshal(rawResults, &draw.DivisionResults); err != nil {
			return nil, fmt.Errorf("failed to decode division results for draw %d: %w", draw.ID, err)
		}
	}

	return &draw, nil
}

// Create inserts a new UPCOMING draw
func (r *DrawRepository) Create(ctx context.Context, draw *entities.Draw) error {
	query := `
		INSERT INTO draws (game_id, draw_number, scheduled_at, status, jackpot_cents, total_sales_cents)
		VALUES ($1, $2, $3, $4, $5, 0)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		draw.GameID,
		draw.DrawNumber,
		draw.ScheduledAt,
		draw.Status,
		draw.JackpotCents,
	).Scan(&draw.ID, &draw.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create draw %d for game %d: %w", draw.DrawNumber, draw.GameID, err)
	}
	return nil
}

// GetByID retrieves a draw by its ID
func (r *DrawRepository) GetByID(ctx context.Context, id int64) (*entities.Draw, error) {
	query := fmt.Sprintf(`SELECT %s FROM draws WHERE id = $1`, drawColumns)

	draw, err := scanDraw(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draw by ID %d: %w", id, err)
	}
	return draw, nil
}

// GetByIDForUpdate retrieves a draw by ID with a row lock, serializing
// concurrent settlement attempts on the same draw
func (r *DrawRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error) {
	query := fmt.Sprintf(`SELECT %s FROM draws WHERE id = $1 FOR UPDATE`, drawColumns)

	draw, err := scanDraw(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock draw %d: %w", id, err)
	}
	return draw, nil
}

// GetDueDraws returns UPCOMING draws scheduled at or before dueBy, oldest first
func (r *DrawRepository) GetDueDraws(ctx context.Context, gameID int64, dueBy time.Time) ([]*entities.Draw, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM draws
		WHERE game_id = $1 AND status = $2 AND scheduled_at <= $3
		ORDER BY scheduled_at, draw_number
	`, drawColumns)

	return r.queryDraws(ctx, query, gameID, entities.DrawStatusUpcoming, dueBy)
}

// GetUpcomingByGame returns all UPCOMING draws for a game ordered by schedule
func (r *DrawRepository) GetUpcomingByGame(ctx context.Context, gameID int64) ([]*entities.Draw, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM draws
		WHERE game_id = $1 AND status = $2
		ORDER BY scheduled_at, draw_number
	`, drawColumns)

	return r.queryDraws(ctx, query, gameID, entities.DrawStatusUpcoming)
}

// GetNextUpcoming returns the earliest-scheduled UPCOMING draw for a game
func (r *DrawRepository) GetNextUpcoming(ctx context.Context, gameID int64) (*entities.Draw, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM draws
		WHERE game_id = $1 AND status = $2
		ORDER BY scheduled_at, draw_number
		LIMIT 1
	`, drawColumns)

	draw, err := scanDraw(r.q.QueryRow(ctx, query, gameID, entities.DrawStatusUpcoming))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next upcoming draw for game %d: %w", gameID, err)
	}
	return draw, nil
}

// GetLatestDrawNumber returns the highest draw number for a game, 0 when none
func (r *DrawRepository) GetLatestDrawNumber(ctx context.Context, gameID int64) (int64, error) {
	query := `SELECT COALESCE(MAX(draw_number), 0) FROM draws WHERE game_id = $1`

	var number int64
	if err := r.q.QueryRow(ctx, query, gameID).Scan(&number); err != nil {
		return 0, fmt.Errorf("failed to get latest draw number for game %d: %w", gameID, err)
	}
	return number, nil
}

// ExistsDrawNumber reports whether a draw number is already taken for a game
func (r *DrawRepository) ExistsDrawNumber(ctx context.Context, gameID, drawNumber int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM draws WHERE game_id = $1 AND draw_number = $2)`

	var exists bool
	if err := r.q.QueryRow(ctx, query, gameID, drawNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check draw number %d for game %d: %w", drawNumber, gameID, err)
	}
	return exists, nil
}

// CompleteSettlement persists the UPCOMING -> COMPLETED transition. The
// status guard in the WHERE clause makes settlement idempotent: a draw
// already completed by a concurrent settler affects zero rows.
func (r *DrawRepository) CompleteSettlement(ctx context.Context, draw *entities.Draw) error {
	rawResults, err := json.Marshal(draw.DivisionResults)
	if err != nil {
		return fmt.Errorf("failed to encode division results for draw %d: %w", draw.ID, err)
	}

	query := `
		UPDATE draws
		SET status = $2,
		    winning_main = $3,
		    winning_special = $4,
		    winners_count = $5,
		    total_payout_cents = $6,
		    division_results = $7,
		    completed_at = $8
		WHERE id = $1 AND status = $9
	`

	tag, err := r.q.Exec(ctx, query,
		draw.ID,
		entities.DrawStatusCompleted,
		draw.WinningMain,
		draw.WinningSpecial,
		draw.WinnersCount,
		draw.TotalPayoutCents,
		rawResults,
		draw.CompletedAt,
		entities.DrawStatusUpcoming,
	)
	if err != nil {
		return fmt.Errorf("failed to complete draw %d: %w", draw.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("draw %d is not open for settlement", draw.ID)
	}
	return nil
}

// UpdateJackpot writes the jackpot snapshot of an UPCOMING draw
func (r *DrawRepository) UpdateJackpot(ctx context.Context, drawID, jackpotCents int64) error {
	query := `UPDATE draws SET jackpot_cents = $2 WHERE id = $1 AND status = $3`

	tag, err := r.q.Exec(ctx, query, drawID, jackpotCents, entities.DrawStatusUpcoming)
	if err != nil {
		return fmt.Errorf("failed to update jackpot for draw %d: %w", drawID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("draw %d is not open for jackpot updates", drawID)
	}
	return nil
}

// IncrementTotalSales atomically adds to an UPCOMING draw's sales counter
func (r *DrawRepository) IncrementTotalSales(ctx context.Context, drawID, amountCents int64) error {
	query := `UPDATE draws SET total_sales_cents = total_sales_cents + $2 WHERE id = $1 AND status = $3`

	tag, err := r.q.Exec(ctx, query, drawID, amountCents, entities.DrawStatusUpcoming)
	if err != nil {
		return fmt.Errorf("failed to increment sales for draw %d: %w", drawID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("draw %d is not open for sales", drawID)
	}
	return nil
}

func (r *DrawRepository) queryDraws(ctx context.Context, query string, args ...any) ([]*entities.Draw, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws: %w", err)
	}
	defer rows.Close()

	var draws []*entities.Draw
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		draws = append(draws, draw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draws: %w", err)
	}

	return draws, nil
}
