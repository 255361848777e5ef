package elo

import (
	"testing"
	"time"

	"github.com/RossFW/botc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, team domain.Alignment, roles ...string) domain.PlayerEntry {
	if len(roles) == 0 {
		roles = []string{""}
	}
	return domain.PlayerEntry{
		Name:        name,
		Roles:       roles,
		Role:        roles[len(roles)-1],
		Team:        team,
		InitialTeam: team,
	}
}

func game(id int64, winner domain.Alignment, players ...domain.PlayerEntry) domain.MatchRecord {
	return domain.MatchRecord{
		GameID:      id,
		Date:        time.Date(2026, 1, int(id), 20, 0, 0, 0, time.UTC),
		Players:     players,
		WinningTeam: winner,
	}
}

func TestReplayFirstGame(t *testing.T) {
	// A=Good, B=Evil, both at 1500, Good wins: delta is exactly +-16.
	engine := NewEngine()
	players := engine.Replay([]domain.MatchRecord{
		game(1, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
	})

	a := players["A"]
	b := players["B"]
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Equal(t, 1516.0, a.Rating)
	assert.Equal(t, 1484.0, b.Rating)

	require.Len(t, a.Snapshots, 1)
	require.NotNil(t, a.Snapshots[0].OverallWinPct)
	assert.Equal(t, 100.0, *a.Snapshots[0].OverallWinPct)
	require.NotNil(t, b.Snapshots[0].OverallWinPct)
	assert.Equal(t, 0.0, *b.Snapshots[0].OverallWinPct)

	require.Len(t, a.Games, 1)
	assert.Equal(t, 1500.0, a.Games[0].RatingBefore)
	assert.Equal(t, 1516.0, a.Games[0].RatingAfter)
}

func TestReplaySecondGameWithSwappedTeams(t *testing.T) {
	// After game 1 A=1516, B=1484. Game 2: A=Evil, B=Good, Evil wins.
	// expected_evil = 1/(1+10^((1484-1516)/400)) ~ 0.5458,
	// delta_A ~ 32*(1-0.5458) ~ +14.5.
	engine := NewEngine()
	players := engine.Replay([]domain.MatchRecord{
		game(1, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
		game(2, domain.Evil, entry("A", domain.Evil), entry("B", domain.Good)),
	})

	assert.InDelta(t, 1530.5, players["A"].Rating, 0.1)

	a := players["A"]
	assert.Equal(t, 2, a.GamesOverall)
	assert.Equal(t, 2, a.WinsOverall)
	assert.Equal(t, 1, a.GamesGood)
	assert.Equal(t, 1, a.GamesEvil)
	assert.Equal(t, a.GamesOverall, a.GamesGood+a.GamesEvil)
}

func TestReplayIsPure(t *testing.T) {
	history := []domain.MatchRecord{
		game(1, domain.Good, entry("A", domain.Good), entry("B", domain.Evil), entry("C", domain.Evil)),
		game(2, domain.Evil, entry("A", domain.Evil), entry("B", domain.Good)),
		game(3, domain.Good, entry("C", domain.Good), entry("B", domain.Evil), entry("A", domain.Good)),
	}

	first := NewEngine().Replay(history)
	second := NewEngine().Replay(history)
	assert.Equal(t, first, second)

	// Replaying on the same engine also matches.
	engine := NewEngine()
	engine.Replay(history)
	assert.Equal(t, first, engine.Replay(history))
}

func TestReplaySortsByGameID(t *testing.T) {
	ordered := []domain.MatchRecord{
		game(1, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
		game(2, domain.Evil, entry("A", domain.Evil), entry("B", domain.Good)),
	}
	shuffled := []domain.MatchRecord{ordered[1], ordered[0]}

	assert.Equal(t, NewEngine().Replay(ordered), NewEngine().Replay(shuffled))
}

func TestExpectedScore(t *testing.T) {
	// Equal ratings are an exact coin flip. The engine derives the
	// Evil expectation as 1 - expected_good, so the pair always sums
	// to exactly 1.0 by construction.
	assert.Equal(t, 0.5, expectedScore(DefaultRating, DefaultRating))

	for _, diff := range []float64{32, -250, 417.5, 1200} {
		a := DefaultRating + diff
		b := DefaultRating
		assert.InDelta(t, 1.0, expectedScore(a, b)+expectedScore(b, a), 1e-12, "diff %v", diff)
	}

	assert.Greater(t, expectedScore(1600, 1500), 0.5)
	assert.Less(t, expectedScore(1400, 1500), 0.5)
}

func TestTeamUniformDelta(t *testing.T) {
	history := []domain.MatchRecord{
		game(1, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
		game(2, domain.Evil,
			entry("A", domain.Good), entry("C", domain.Good), entry("D", domain.Good),
			entry("B", domain.Evil), entry("E", domain.Evil)),
	}
	players := NewEngine().Replay(history)

	deltaOf := func(name string) float64 {
		gs := players[name].Games
		last := gs[len(gs)-1]
		return last.RatingAfter - last.RatingBefore
	}

	// Same delta for everyone on a side even though A entered game 2
	// at a different rating than C and D.
	assert.Equal(t, deltaOf("C"), deltaOf("A"))
	assert.Equal(t, deltaOf("D"), deltaOf("A"))
	assert.Equal(t, deltaOf("E"), deltaOf("B"))
	assert.NotEqual(t, deltaOf("A"), deltaOf("B"))
}

func TestColdStartRating(t *testing.T) {
	history := []domain.MatchRecord{
		game(1, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
		game(5, domain.Evil, entry("A", domain.Good), entry("Newcomer", domain.Evil)),
	}
	players := NewEngine().Replay(history)

	require.Len(t, players["Newcomer"].Games, 1)
	assert.Equal(t, DefaultRating, players["Newcomer"].Games[0].RatingBefore)
}

func TestEmptyTeamAveragesToDefault(t *testing.T) {
	// A game where everyone ended up Evil still replays: the empty
	// Good side averages to 1500 and the expectation stays total.
	players := NewEngine().Replay([]domain.MatchRecord{
		game(1, domain.Evil, entry("A", domain.Evil), entry("B", domain.Evil)),
	})

	assert.Equal(t, players["A"].Rating, players["B"].Rating)
	assert.Equal(t, 1516.0, players["A"].Rating)
}

func TestSnapshotPercentagesMatchCounters(t *testing.T) {
	history := []domain.MatchRecord{
		game(1, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
		game(2, domain.Evil, entry("A", domain.Evil), entry("B", domain.Good)),
		game(3, domain.Evil, entry("A", domain.Good), entry("B", domain.Evil)),
	}
	players := NewEngine().Replay(history)

	a := players["A"]
	wins, games := 0, 0
	goodWins, goodGames := 0, 0
	evilWins, evilGames := 0, 0
	for i, rec := range a.Games {
		games++
		if rec.Win {
			wins++
		}
		if rec.Team == domain.Good {
			goodGames++
			if rec.Win {
				goodWins++
			}
		} else {
			evilGames++
			if rec.Win {
				evilWins++
			}
		}

		snap := a.Snapshots[i]
		require.NotNil(t, snap.OverallWinPct)
		assert.Equal(t, float64(wins)/float64(games)*100, *snap.OverallWinPct)
		if goodGames == 0 {
			assert.Nil(t, snap.GoodWinPct)
		} else {
			require.NotNil(t, snap.GoodWinPct)
			assert.Equal(t, float64(goodWins)/float64(goodGames)*100, *snap.GoodWinPct)
		}
		if evilGames == 0 {
			assert.Nil(t, snap.EvilWinPct)
		} else {
			require.NotNil(t, snap.EvilWinPct)
			assert.Equal(t, float64(evilWins)/float64(evilGames)*100, *snap.EvilWinPct)
		}
	}
}

func TestDeletionConsistency(t *testing.T) {
	full := []domain.MatchRecord{
		game(1, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
		game(2, domain.Evil, entry("A", domain.Evil), entry("B", domain.Good)),
		game(3, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
	}
	withoutSecond := []domain.MatchRecord{full[0], full[2]}

	deleted := append([]domain.MatchRecord{}, full[0], full[2])
	assert.Equal(t, NewEngine().Replay(withoutSecond), NewEngine().Replay(deleted))
}

func TestEditLocality(t *testing.T) {
	base := []domain.MatchRecord{
		game(1, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
		game(2, domain.Evil, entry("A", domain.Evil), entry("B", domain.Good)),
		game(3, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
	}
	edited := make([]domain.MatchRecord, len(base))
	copy(edited, base)
	edited[1] = game(2, domain.Good, entry("A", domain.Evil), entry("B", domain.Good))

	before := NewEngine().Replay(base)
	after := NewEngine().Replay(edited)

	for _, name := range []string{"A", "B"} {
		// Game 1 precedes the edit and must be untouched.
		assert.Equal(t, before[name].Snapshots[0], after[name].Snapshots[0], name)
		// The edited game and everything after it move.
		assert.NotEqual(t, before[name].Snapshots[1].Rating, after[name].Snapshots[1].Rating, name)
		assert.NotEqual(t, before[name].Snapshots[2].Rating, after[name].Snapshots[2].Rating, name)
	}
}

func TestReplayDiscardsPreviousState(t *testing.T) {
	engine := NewEngine()
	engine.Replay([]domain.MatchRecord{
		game(1, domain.Good, entry("Ghost", domain.Good), entry("B", domain.Evil)),
	})

	players := engine.Replay([]domain.MatchRecord{
		game(1, domain.Good, entry("A", domain.Good), entry("B", domain.Evil)),
	})

	_, ok := players["Ghost"]
	assert.False(t, ok)
	assert.Equal(t, players, engine.Players())
}
