package roster

import (
	"fmt"
	"time"

	"github.com/RossFW/botc/internal/domain"
)

// TeamSide selects one of the two submitted rosters.
type TeamSide int

const (
	TeamNone TeamSide = iota
	Team1
	Team2
)

func (s TeamSide) valid() bool {
	return s == Team1 || s == Team2
}

// ValidationError rejects a submission before any mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Assemble combines two parsed rosters with the Evil-team and winner
// selections into one canonical MatchRecord. Both selections must be
// present; otherwise the submission is rejected with a ValidationError
// and nothing is recorded. Every player's final alignment is stamped
// from the team mapping, and a missing initial alignment defaults to
// the final one.
func Assemble(team1, team2 []domain.PlayerEntry, evil, winner TeamSide, script, storyteller string, gameID int64, at time.Time) (domain.MatchRecord, error) {
	if !evil.valid() {
		return domain.MatchRecord{}, &ValidationError{Field: "evil team", Reason: "select which team is Evil"}
	}
	if !winner.valid() {
		return domain.MatchRecord{}, &ValidationError{Field: "winner", Reason: "select which team won"}
	}

	team1Align := domain.Good
	if evil == Team1 {
		team1Align = domain.Evil
	}
	team2Align := team1Align.Opposite()

	winningTeam := team1Align
	if winner == Team2 {
		winningTeam = team2Align
	}

	players := make([]domain.PlayerEntry, 0, len(team1)+len(team2))
	players = append(players, stamp(team1, team1Align)...)
	players = append(players, stamp(team2, team2Align)...)

	return domain.MatchRecord{
		GameID:      gameID,
		Date:        at,
		Players:     players,
		WinningTeam: winningTeam,
		Script:      script,
		Storyteller: storyteller,
	}, nil
}

func stamp(entries []domain.PlayerEntry, align domain.Alignment) []domain.PlayerEntry {
	stamped := make([]domain.PlayerEntry, len(entries))
	for i, e := range entries {
		e.Team = align
		if e.InitialTeam == "" {
			e.InitialTeam = align
		}
		stamped[i] = e
	}
	return stamped
}
