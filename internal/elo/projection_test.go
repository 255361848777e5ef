package elo

import (
	"testing"

	"github.com/RossFW/botc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardOrdering(t *testing.T) {
	history := []domain.MatchRecord{
		game(1, domain.Good,
			entry("Alice", domain.Good), entry("Bob", domain.Good),
			entry("Carol", domain.Evil), entry("Dave", domain.Evil)),
	}
	players := NewEngine().Replay(history)
	rows := Leaderboard(players)

	require.Len(t, rows, 4)
	// Winners share a rating and sort by name; same for losers.
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave"},
		[]string{rows[0].Name, rows[1].Name, rows[2].Name, rows[3].Name})
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 4, rows[3].Rank)
	assert.Greater(t, rows[0].Rating, rows[2].Rating)
}

func TestLeaderboardCarriesLatestSnapshot(t *testing.T) {
	history := []domain.MatchRecord{
		game(1, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
		game(2, domain.Evil, entry("A", domain.Good), entry("B", domain.Evil)),
	}
	rows := Leaderboard(NewEngine().Replay(history))

	var a LeaderboardRow
	for _, row := range rows {
		if row.Name == "A" {
			a = row
		}
	}
	require.NotNil(t, a.OverallWinPct)
	assert.Equal(t, 50.0, *a.OverallWinPct)
	assert.Equal(t, 2, a.Games)
	// A never played Evil.
	assert.Nil(t, a.EvilWinPct)
}

func TestRatingDelta(t *testing.T) {
	history := []domain.MatchRecord{
		game(1, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
		game(3, domain.Evil, entry("A", domain.Evil), entry("B", domain.Good)),
		game(5, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
	}
	players := NewEngine().Replay(history)
	a := players["A"]

	t.Run("full range falls back to default before", func(t *testing.T) {
		before, after, ok := a.RatingDelta(1, 5)
		require.True(t, ok)
		assert.Equal(t, DefaultRating, before)
		assert.Equal(t, a.Rating, after)
	})

	t.Run("end between games uses nearest earlier snapshot", func(t *testing.T) {
		before, after, ok := a.RatingDelta(2, 4)
		require.True(t, ok)
		assert.Equal(t, a.Snapshots[0].Rating, before)
		assert.Equal(t, a.Snapshots[1].Rating, after)
	})

	t.Run("undefined when no snapshot at or before end", func(t *testing.T) {
		_, _, ok := a.RatingDelta(0, 0)
		assert.False(t, ok)
	})

	t.Run("player with no games is undefined", func(t *testing.T) {
		_, _, ok := newPlayer("nobody").RatingDelta(1, 10)
		assert.False(t, ok)
	})
}
