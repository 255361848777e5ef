package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RossFW/botc/internal/domain"

	"github.com/rs/zerolog"
)

// MatchRepository stores the raw game log, the single source of truth
// for all ratings. Player entries live in a JSON column so a row keeps
// the exact shape the replay engine consumes.
type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(db *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{db: db, logger: logger}
}

// List returns the whole game log in ascending game id order, the
// canonical replay order.
func (r *MatchRepository) List(ctx context.Context) ([]domain.MatchRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT game_id, date, players, winning_team, game_mode, story_teller
		 FROM games ORDER BY game_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []domain.MatchRecord
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, rec)
	}
	return games, rows.Err()
}

func (r *MatchRepository) Get(ctx context.Context, gameID int64) (*domain.MatchRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT game_id, date, players, winning_team, game_mode, story_teller
		 FROM games WHERE game_id = ?`, gameID)
	rec, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game %d not found: %w", gameID, err)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// NextGameID returns max(game_id)+1, or 1 for an empty log. Ids stay
// unique even after deletions at the tail are re-submitted.
func (r *MatchRepository) NextGameID(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(game_id), 0) + 1 FROM games`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next game id: %w", err)
	}
	return next, nil
}

func (r *MatchRepository) Insert(ctx context.Context, rec domain.MatchRecord) error {
	players, err := json.Marshal(rec.Players)
	if err != nil {
		return fmt.Errorf("failed to marshal players: %w", err)
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO games (game_id, date, players, winning_team, game_mode, story_teller, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.Date, string(players), string(rec.WinningTeam), rec.Script, rec.Storyteller, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert game %d: %w", rec.GameID, err)
	}

	r.logger.Debug().Int64("game_id", rec.GameID).Msg("game inserted")
	return nil
}

// Update replaces a game wholesale. There is no partial-field patch:
// the caller supplies the complete replacement record.
func (r *MatchRepository) Update(ctx context.Context, rec domain.MatchRecord) error {
	players, err := json.Marshal(rec.Players)
	if err != nil {
		return fmt.Errorf("failed to marshal players: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE games SET date = ?, players = ?, winning_team = ?, game_mode = ?, story_teller = ?, updated_at = ?
		 WHERE game_id = ?`,
		rec.Date, string(players), string(rec.WinningTeam), rec.Script, rec.Storyteller, time.Now(), rec.GameID)
	if err != nil {
		return fmt.Errorf("failed to update game %d: %w", rec.GameID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("game %d not found", rec.GameID)
	}

	r.logger.Debug().Int64("game_id", rec.GameID).Msg("game updated")
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, gameID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE game_id = ?`, gameID)
	if err != nil {
		return fmt.Errorf("failed to delete game %d: %w", gameID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("game %d not found", gameID)
	}

	r.logger.Debug().Int64("game_id", gameID).Msg("game deleted")
	return nil
}

func (r *MatchRepository) Exists(ctx context.Context, gameID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM games WHERE game_id = ?)`, gameID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check game %d: %w", gameID, err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (domain.MatchRecord, error) {
	var rec domain.MatchRecord
	var players string
	var winning string
	if err := row.Scan(&rec.GameID, &rec.Date, &players, &winning, &rec.Script, &rec.Storyteller); err != nil {
		return rec, err
	}
	rec.WinningTeam = domain.Alignment(winning)
	if err := json.Unmarshal([]byte(players), &rec.Players); err != nil {
		return rec, fmt.Errorf("failed to unmarshal players for game %d: %w", rec.GameID, err)
	}
	return rec, nil
}
