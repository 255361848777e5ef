package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/RossFW/botc/internal/constants"
	"github.com/RossFW/botc/internal/domain"
	"github.com/RossFW/botc/internal/elo"
	"github.com/RossFW/botc/internal/export"
	"github.com/RossFW/botc/internal/repository"
	"github.com/RossFW/botc/internal/roster"

	"github.com/rs/zerolog"
)

// Submission carries the raw form input for one game: two free-text
// rosters plus the Evil-team and winner selections.
type Submission struct {
	Team1       string
	Team2       string
	EvilTeam    roster.TeamSide
	Winner      roster.TeamSide
	Script      string
	Storyteller string
}

// MatchService owns the game log and the derived player state. Every
// mutation runs the same sequence: persist the log change, replay the
// whole history, export the rebuilt state. There is no incremental
// path, so submit, edit and delete can never diverge.
type MatchService struct {
	repo      *repository.MatchRepository
	revisions *repository.RevisionRepository
	engine    *elo.Engine
	exporter  *export.Exporter
	logger    zerolog.Logger

	mu    sync.Mutex
	state elo.Players
}

func NewMatchService(
	repo *repository.MatchRepository,
	revisions *repository.RevisionRepository,
	engine *elo.Engine,
	exporter *export.Exporter,
	logger zerolog.Logger,
) *MatchService {
	return &MatchService{
		repo:      repo,
		revisions: revisions,
		engine:    engine,
		exporter:  exporter,
		logger:    logger,
	}
}

// Submit validates and records a new game, then rebuilds all ratings.
func (s *MatchService) Submit(ctx context.Context, sub Submission) (*domain.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	gameID, err := s.repo.NextGameID(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.assemble(sub, gameID, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.revisions.Record(ctx, rec.GameID, domain.RevisionSubmit); err != nil {
		s.logger.Warn().Err(err).Int64("game_id", rec.GameID).Msg("failed to record revision")
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("game_id", rec.GameID).Int("players", len(rec.Players)).Msg("game submitted")
	return &rec, nil
}

// Edit replaces a game's players and outcome. The id and timestamp of
// the original record are preserved, as are its script and
// storyteller.
func (s *MatchService) Edit(ctx context.Context, gameID int64, sub Submission) (*domain.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	sub.Script = existing.Script
	sub.Storyteller = existing.Storyteller
	rec, err := s.assemble(sub, existing.GameID, existing.Date)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.revisions.Record(ctx, gameID, domain.RevisionEdit); err != nil {
		s.logger.Warn().Err(err).Int64("game_id", gameID).Msg("failed to record revision")
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("game_id", gameID).Msg("game edited")
	return &rec, nil
}

func (s *MatchService) Delete(ctx context.Context, gameID int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, gameID); err != nil {
		return err
	}
	if err := s.revisions.Record(ctx, gameID, domain.RevisionDelete); err != nil {
		s.logger.Warn().Err(err).Int64("game_id", gameID).Msg("failed to record revision")
	}
	if err := s.refresh(ctx); err != nil {
		return err
	}

	s.logger.Info().Int64("game_id", gameID).Msg("game deleted")
	return nil
}

// GameLog returns the full history in replay order.
func (s *MatchService) GameLog(ctx context.Context) ([]domain.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.List(ctx)
}

// State returns the derived player mapping, replaying the stored log
// on first use.
func (s *MatchService) State(ctx context.Context) (elo.Players, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		games, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		s.state = s.engine.Replay(games)
	}
	return s.state, nil
}

// Refresh forces a full replay from the stored log, for callers that
// mutate the log outside Submit/Edit/Delete (remote sync).
func (s *MatchService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh(ctx)
}

func (s *MatchService) refresh(ctx context.Context) error {
	games, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load game log: %w", err)
	}

	s.state = s.engine.Replay(games)

	if err := s.exporter.Write(ctx, s.state, games); err != nil {
		s.logger.Warn().Err(err).Msg("failed to export state")
	}
	return nil
}

func (s *MatchService) assemble(sub Submission, gameID int64, at time.Time) (domain.MatchRecord, error) {
	team1 := roster.ParseRoster(sub.Team1)
	team2 := roster.ParseRoster(sub.Team2)
	return roster.Assemble(team1, team2, sub.EvilTeam, sub.Winner, sub.Script, sub.Storyteller, gameID, at)
}
