package elo

import (
	"sort"
)

// LeaderboardRow is one read-only leaderboard entry. Percentages come
// from the player's latest snapshot and stay nil until the bucket has
// at least one game.
type LeaderboardRow struct {
	Rank          int      `json:"rank"`
	Name          string   `json:"name"`
	Rating        float64  `json:"rating"`
	OverallWinPct *float64 `json:"overall_win_pct"`
	GoodWinPct    *float64 `json:"good_win_pct"`
	EvilWinPct    *float64 `json:"evil_win_pct"`
	Games         int      `json:"games"`
}

// Leaderboard sorts all players by rating descending. Equal ratings
// are broken lexicographically by name so the ordering never depends
// on map iteration order.
func Leaderboard(players Players) []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, len(players))
	for _, p := range players {
		row := LeaderboardRow{
			Name:   p.Name,
			Rating: p.Rating,
			Games:  p.GamesOverall,
		}
		if n := len(p.Snapshots); n > 0 {
			last := p.Snapshots[n-1]
			row.OverallWinPct = last.OverallWinPct
			row.GoodWinPct = last.GoodWinPct
			row.EvilWinPct = last.EvilWinPct
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].Name < rows[j].Name
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// RatingDelta reports how a player's rating moved over the game number
// range [start, end]. The before value is the most recent snapshot
// strictly before start, or DefaultRating when the range covers the
// player's whole history. The after value is the snapshot at end, or
// the nearest one at or before it. ok is false when no snapshot
// qualifies for the after bound.
func (p *Player) RatingDelta(start, end int64) (before, after float64, ok bool) {
	before = DefaultRating
	foundAfter := false
	for _, snap := range p.Snapshots {
		if snap.GameNumber < start {
			before = snap.Rating
		}
		if snap.GameNumber <= end {
			after = snap.Rating
			foundAfter = true
		}
	}
	if !foundAfter {
		return 0, 0, false
	}
	return before, after, true
}
