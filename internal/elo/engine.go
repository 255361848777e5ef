// Package elo rebuilds all player ratings from the raw game log.
//
// The engine never updates incrementally: every history mutation
// triggers a full replay so that insert, edit and delete all share one
// code path and derived state can never drift from the log.
package elo

import (
	"math"
	"sort"

	"github.com/RossFW/botc/internal/domain"
)

const (
	DefaultRating = 1500.0
	KFactor       = 32.0
)

// Engine owns the derived player state for one game log. Replay is a
// pure function of the sorted history: same input, same output,
// bit-for-bit, no matter how often it runs.
type Engine struct {
	players Players
}

func NewEngine() *Engine {
	return &Engine{players: make(Players)}
}

// Players returns the state computed by the most recent Replay.
func (e *Engine) Players() Players {
	return e.players
}

// Replay discards all player state and folds the entire history, in
// ascending game id order, into fresh ratings, counters and snapshots.
func (e *Engine) Replay(history []domain.MatchRecord) Players {
	e.players = make(Players)

	games := make([]domain.MatchRecord, len(history))
	copy(games, history)
	sort.Slice(games, func(i, j int) bool {
		return games[i].GameID < games[j].GameID
	})

	for _, game := range games {
		e.applyGame(game)
	}
	return e.players
}

func (e *Engine) applyGame(game domain.MatchRecord) {
	for _, p := range game.Players {
		if _, ok := e.players[p.Name]; !ok {
			e.players[p.Name] = newPlayer(p.Name)
		}
	}

	var good, evil []domain.PlayerEntry
	for _, p := range game.Players {
		if p.Team == domain.Good {
			good = append(good, p)
		} else {
			evil = append(evil, p)
		}
	}

	avgGood := e.teamAverage(good)
	avgEvil := e.teamAverage(evil)
	expGood := expectedScore(avgGood, avgEvil)
	expEvil := 1.0 - expGood

	resultGood, resultEvil := 0.0, 1.0
	if game.WinningTeam == domain.Good {
		resultGood, resultEvil = 1.0, 0.0
	}

	for _, p := range game.Players {
		pl := e.players[p.Name]
		before := pl.Rating

		var delta float64
		if p.Team == domain.Good {
			delta = KFactor * (resultGood - expGood)
		} else {
			delta = KFactor * (resultEvil - expEvil)
		}
		after := before + delta
		pl.Rating = after

		pl.recordGame(GameRecord{
			GameNumber:   game.GameID,
			Date:         game.Date,
			Team:         p.Team,
			InitialTeam:  p.InitialTeam,
			Role:         p.Role,
			Roles:        p.Roles,
			Win:          p.Team == game.WinningTeam,
			RatingBefore: before,
			RatingAfter:  after,
		})
	}
}

// teamAverage is the arithmetic mean of current ratings, summed in
// roster list order so the result is reproducible. An empty team
// averages to DefaultRating, which keeps the expectation total.
func (e *Engine) teamAverage(team []domain.PlayerEntry) float64 {
	if len(team) == 0 {
		return DefaultRating
	}
	sum := 0.0
	for _, p := range team {
		sum += e.players[p.Name].Rating
	}
	return sum / float64(len(team))
}

// expectedScore is the logistic Elo win expectation for a rating a
// against a rating b. expectedScore(a,b) + expectedScore(b,a) == 1.
func expectedScore(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/400))
}
