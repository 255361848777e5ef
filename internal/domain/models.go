package domain

import (
	"time"
)

// Alignment is a player's team for a single game, Good or Evil.
type Alignment string

const (
	Good Alignment = "Good"
	Evil Alignment = "Evil"
)

func (a Alignment) Valid() bool {
	return a == Good || a == Evil
}

func (a Alignment) Opposite() Alignment {
	if a == Good {
		return Evil
	}
	return Good
}

// PlayerEntry is one player's line in a game record. Names are
// case-sensitive and act as the player key across the whole log.
// The JSON field names mirror the gamelog schema used by the
// remote games table, so records round-trip through sync unchanged.
type PlayerEntry struct {
	Name string `json:"name"`
	// Roles holds every role the player held during the game, in
	// order. Role is always the last element.
	Roles []string `json:"roles"`
	Role  string   `json:"role"`
	// Team is the final alignment; InitialTeam is where the player
	// started and defaults to Team when no hint was given.
	Team        Alignment `json:"team"`
	InitialTeam Alignment `json:"initial_team"`
}

// MatchRecord is one canonical game. GameID is the ordering key for
// replay (not the timestamp); ids must be unique but need not be
// contiguous.
type MatchRecord struct {
	GameID      int64         `json:"game_id"`
	Date        time.Time     `json:"date"`
	Players     []PlayerEntry `json:"players"`
	WinningTeam Alignment     `json:"winning_team"`
	Script      string        `json:"game_mode"`
	Storyteller string        `json:"story_teller"`
}

// Revision is an audit entry for one mutation of the game log.
type Revision struct {
	ID        string    `json:"id"`
	GameID    int64     `json:"game_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RevisionSubmit = "submit"
	RevisionEdit   = "edit"
	RevisionDelete = "delete"
)
