package service

import (
	"context"
	"fmt"

	"github.com/RossFW/botc/internal/analytics"
	"github.com/RossFW/botc/internal/constants"
	"github.com/RossFW/botc/internal/domain"
	"github.com/RossFW/botc/internal/elo"

	"github.com/rs/zerolog"
)

// StatsService serves the read-only projections: leaderboard, rating
// history, and the second-pass aggregates over the game log.
type StatsService struct {
	matches *MatchService
	logger  zerolog.Logger
}

func NewStatsService(matches *MatchService, logger zerolog.Logger) *StatsService {
	return &StatsService{matches: matches, logger: logger}
}

func (s *StatsService) Leaderboard(ctx context.Context) ([]elo.LeaderboardRow, error) {
	players, err := s.matches.State(ctx)
	if err != nil {
		return nil, err
	}
	return elo.Leaderboard(players), nil
}

func (s *StatsService) PlayerHistory(ctx context.Context, name string) (*elo.Player, error) {
	players, err := s.matches.State(ctx)
	if err != nil {
		return nil, err
	}
	player, ok := players[name]
	if !ok {
		return nil, fmt.Errorf("player %q not found", name)
	}
	return player, nil
}

// RatingDelta describes a player's rating movement over a game number
// range. Defined is false when the player has no snapshot at or before
// the end bound.
type RatingDelta struct {
	Name    string  `json:"name"`
	Start   int64   `json:"start"`
	End     int64   `json:"end"`
	Before  float64 `json:"rating_before"`
	After   float64 `json:"rating_after"`
	Delta   float64 `json:"delta"`
	Defined bool    `json:"defined"`
}

func (s *StatsService) RatingDelta(ctx context.Context, name string, start, end int64) (*RatingDelta, error) {
	player, err := s.PlayerHistory(ctx, name)
	if err != nil {
		return nil, err
	}

	result := &RatingDelta{Name: name, Start: start, End: end}
	before, after, ok := player.RatingDelta(start, end)
	if !ok {
		return result, nil
	}
	result.Before = before
	result.After = after
	result.Delta = after - before
	result.Defined = true
	return result, nil
}

// ScriptStats breaks the log down per script. An optional storyteller
// narrows the view to that facilitator's games.
type ScriptStats struct {
	Scripts []analytics.ScriptStats          `json:"scripts"`
	Totals  map[string]analytics.ScriptStats `json:"totals"`
}

func (s *StatsService) ScriptStats(ctx context.Context, storyteller string) (*ScriptStats, error) {
	games, err := s.filteredLog(ctx, storyteller)
	if err != nil {
		return nil, err
	}
	scripts, totals := analytics.ScriptBreakdown(games)
	return &ScriptStats{Scripts: scripts, Totals: totals}, nil
}

func (s *StatsService) RoleStats(ctx context.Context, storyteller string) ([]analytics.RoleStats, error) {
	games, err := s.filteredLog(ctx, storyteller)
	if err != nil {
		return nil, err
	}
	return analytics.RoleBreakdown(games), nil
}

func (s *StatsService) CategoryStats(ctx context.Context) ([]analytics.CategoryStats, error) {
	games, err := s.matches.GameLog(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := analytics.CategoryBreakdown(games)
	if err != nil {
		s.logger.Error().Err(err).Msg("category aggregation aborted")
		return nil, err
	}
	return stats, nil
}

func (s *StatsService) Storytellers(ctx context.Context) ([]string, error) {
	games, err := s.matches.GameLog(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Storytellers(games), nil
}

func (s *StatsService) Versus(ctx context.Context, first, second string) (*analytics.PairStats, error) {
	games, err := s.matches.GameLog(ctx)
	if err != nil {
		return nil, err
	}
	stats := analytics.Versus(games, first, second)
	return &stats, nil
}

func (s *StatsService) PlayerBreakdown(ctx context.Context, name string) (*analytics.PlayerBreakdown, error) {
	games, err := s.matches.GameLog(ctx)
	if err != nil {
		return nil, err
	}
	bd := analytics.BreakdownFor(games, name)
	return &bd, nil
}

func (s *StatsService) filteredLog(ctx context.Context, storyteller string) ([]domain.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	games, err := s.matches.GameLog(ctx)
	if err != nil {
		return nil, err
	}
	if storyteller != "" {
		games = analytics.FilterByStoryteller(games, storyteller)
	}
	return games, nil
}
