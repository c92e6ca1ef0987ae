package repository

import (
	"context"
	"fmt"

	"lotto/database"
	"lotto/domain/entities"
	"lotto/domain/interfaces"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// GameRepository implements the GameRepository interface
type GameRepository struct {
	q Queryable
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{q: db.Pool}
}

func newGameRepository(tx Queryable) interfaces.GameRepository {
	return &GameRepository{q: tx}
}

const gameColumns = `
	id, slug, name, ticket_price_cents,
	main_pick_count, main_range_min, main_range_max,
	special_pick_count, special_range_min, special_range_max,
	draw_frequency, base_jackpot_cents, current_jackpot_cents,
	prize_divisions, active, created_at
`

// scanGame scans one game row including its prize division config.
// Malformed division entries are dropped with a warning so one bad config
// row cannot take down settlement for every game.
func scanGame(row pgx.Row) (*entities.Game, error) {
	var game entities.Game
	var rawDivisions []byte

	err := row.Scan(
		&game.ID,
		&game.Slug,
		&game.Name,
		&game.TicketPriceCents,
		&game.MainPickCount,
		&game.MainRangeMin,
		&game.MainRangeMax,
		&game.SpecialPickCount,
		&game.SpecialRangeMin,
		&game.SpecialRangeMax,
		&game.DrawFrequency,
		&game.BaseJackpotCents,
		&game.CurrentJackpotCents,
		&rawDivisions,
		&game.Active,
		&game.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rules, dropped, err := entities.ParsePrizeDivisions(rawDivisions)
	if err != nil {
		log.WithFields(log.Fields{
			"gameID":   game.ID,
			"gameSlug": game.Slug,
		}).WithError(err).Warn("Unparseable prize division config, treating as empty")
		rules = nil
	}
	if dropped > 0 {
		log.WithFields(log.Fields{
			"gameID":   game.ID,
			"gameSlug": game.Slug,
			"dropped":  dropped,
		}).Warn("Dropped malformed prize division entries")
	}
	game.PrizeDivisions = rules

	return &game, nil
}

// GetByID retrieves a game by its ID
func (r *GameRepository) GetByID(ctx context.Context, id int64) (*entities.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE id = $1`, gameColumns)

	game, err := scanGame(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID %d: %w", id, err)
	}
	return game, nil
}

// GetBySlug retrieves a game by its unique slug
func (r *GameRepository) GetBySlug(ctx context.Context, slug string) (*entities.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE slug = $1`, gameColumns)

	game, err := scanGame(r.q.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by slug %s: %w", slug, err)
	}
	return game, nil
}

// ListActive returns all active games ordered by ID
func (r *GameRepository) ListActive(ctx context.Context) ([]*entities.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE active = true ORDER BY id`, gameColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active games: %w", err)
	}
	defer rows.Close()

	var games []*entities.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}

// UpdateCurrentJackpot writes the game's rolling jackpot value
func (r *GameRepository) UpdateCurrentJackpot(ctx context.Context, gameID, jackpotCents int64) error {
	query := `UPDATE games SET current_jackpot_cents = $2 WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, gameID, jackpotCents)
	if err != nil {
		return fmt.Errorf("failed to update jackpot for game %d: %w", gameID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", gameID)
	}
	return nil
}
