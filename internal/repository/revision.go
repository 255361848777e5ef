package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/RossFW/botc/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// RevisionRepository keeps an audit trail of game log mutations.
type RevisionRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRevisionRepository(db *sql.DB, logger zerolog.Logger) *RevisionRepository {
	return &RevisionRepository{db: db, logger: logger}
}

func (r *RevisionRepository) Record(ctx context.Context, gameID int64, action string) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate revision id: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO revisions (id, game_id, action, created_at) VALUES (?, ?, ?, ?)`,
		id, gameID, action, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record revision: %w", err)
	}

	r.logger.Debug().Str("id", id).Int64("game_id", gameID).Str("action", action).Msg("revision recorded")
	return nil
}

func (r *RevisionRepository) List(ctx context.Context, limit int) ([]domain.Revision, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_id, action, created_at FROM revisions
		 ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []domain.Revision
	for rows.Next() {
		var rev domain.Revision
		if err := rows.Scan(&rev.ID, &rev.GameID, &rev.Action, &rev.CreatedAt); err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}
