package elo

import (
	"time"

	"github.com/RossFW/botc/internal/domain"
)

// Snapshot captures a player's rating and win percentages immediately
// after one game. Percentages are nil while their bucket has no games.
type Snapshot struct {
	GameNumber    int64     `json:"game_number"`
	Date          time.Time `json:"date"`
	Rating        float64   `json:"rating"`
	OverallWinPct *float64  `json:"overall_win_pct"`
	GoodWinPct    *float64  `json:"good_win_pct"`
	EvilWinPct    *float64  `json:"evil_win_pct"`
}

// GameRecord is one game from a single player's perspective.
type GameRecord struct {
	GameNumber   int64            `json:"game_number"`
	Date         time.Time        `json:"date"`
	Team         domain.Alignment `json:"team"`
	InitialTeam  domain.Alignment `json:"initial_team"`
	Role         string           `json:"role"`
	Roles        []string         `json:"roles"`
	Win          bool             `json:"win"`
	RatingBefore float64          `json:"rating_before"`
	RatingAfter  float64          `json:"rating_after"`
}

// Player is the fully derived aggregate for one name. It is never a
// source of truth: every field is rebuilt from scratch by Replay, and
// Rating is exactly the result of folding DefaultRating through every
// game the player appeared in.
type Player struct {
	Name      string       `json:"name"`
	Rating    float64      `json:"current_rating"`
	Snapshots []Snapshot   `json:"rating_history"`
	Games     []GameRecord `json:"game_history"`

	GamesOverall int `json:"games_overall"`
	WinsOverall  int `json:"wins_overall"`
	GamesGood    int `json:"games_good"`
	WinsGood     int `json:"wins_good"`
	GamesEvil    int `json:"games_evil"`
	WinsEvil     int `json:"wins_evil"`
}

// Players maps player name (case-sensitive) to derived state.
type Players map[string]*Player

func newPlayer(name string) *Player {
	return &Player{Name: name, Rating: DefaultRating}
}

// recordGame appends one game, bumps the counters, and takes a snapshot
// from the just-updated counters so percentages include this game.
func (p *Player) recordGame(rec GameRecord) {
	p.Games = append(p.Games, rec)

	p.GamesOverall++
	if rec.Win {
		p.WinsOverall++
	}
	switch rec.Team {
	case domain.Good:
		p.GamesGood++
		if rec.Win {
			p.WinsGood++
		}
	case domain.Evil:
		p.GamesEvil++
		if rec.Win {
			p.WinsEvil++
		}
	}

	p.Snapshots = append(p.Snapshots, Snapshot{
		GameNumber:    rec.GameNumber,
		Date:          rec.Date,
		Rating:        rec.RatingAfter,
		OverallWinPct: winPct(p.WinsOverall, p.GamesOverall),
		GoodWinPct:    winPct(p.WinsGood, p.GamesGood),
		EvilWinPct:    winPct(p.WinsEvil, p.GamesEvil),
	})
}

func winPct(wins, games int) *float64 {
	if games == 0 {
		return nil
	}
	pct := float64(wins) / float64(games) * 100
	return &pct
}
