package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/RossFW/botc/internal/config"
	"github.com/RossFW/botc/internal/constants"
	"github.com/RossFW/botc/internal/database"
	"github.com/RossFW/botc/internal/domain"
	"github.com/RossFW/botc/internal/elo"
	"github.com/RossFW/botc/internal/export"
	"github.com/RossFW/botc/internal/repository"
	"github.com/RossFW/botc/internal/roster"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*MatchService, string) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db, zerolog.Nop()))

	dir := t.TempDir()
	cfg := &config.Config{DataDir: dir}

	svc := NewMatchService(
		repository.NewMatchRepository(db, zerolog.Nop()),
		repository.NewRevisionRepository(db, zerolog.Nop()),
		elo.NewEngine(),
		export.NewExporter(cfg, zerolog.Nop()),
		zerolog.Nop(),
	)
	return svc, dir
}

func submission(winner roster.TeamSide) Submission {
	return Submission{
		Team1:       "Alice Chef\nBob Empath",
		Team2:       "Carol Imp\nDave Poisoner",
		EvilTeam:    roster.Team2,
		Winner:      winner,
		Script:      "Trouble Brewing",
		Storyteller: "Zed",
	}
}

func TestSubmitAssignsSequentialIDs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, submission(roster.Team1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.GameID)
	assert.Equal(t, domain.Good, first.WinningTeam)

	second, err := svc.Submit(ctx, submission(roster.Team2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.GameID)
	assert.Equal(t, domain.Evil, second.WinningTeam)
}

func TestSubmitRejectsIncompleteSelection(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sub := submission(roster.TeamNone)
	_, err := svc.Submit(ctx, sub)
	require.Error(t, err)
	var validation *roster.ValidationError
	assert.ErrorAs(t, err, &validation)

	// Nothing was recorded.
	games, err := svc.GameLog(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestSubmitReplaysState(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, submission(roster.Team1))
	require.NoError(t, err)

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1516.0, state["Alice"].Rating)
	assert.Equal(t, 1484.0, state["Carol"].Rating)
}

func TestEditPreservesIDTimestampAndScript(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	orig, err := svc.Submit(ctx, submission(roster.Team1))
	require.NoError(t, err)

	edit := submission(roster.Team2)
	edit.Script = "Should Be Ignored"
	edit.Storyteller = "Should Be Ignored"
	edited, err := svc.Edit(ctx, orig.GameID, edit)
	require.NoError(t, err)

	assert.Equal(t, orig.GameID, edited.GameID)
	assert.True(t, orig.Date.Equal(edited.Date))
	assert.Equal(t, "Trouble Brewing", edited.Script)
	assert.Equal(t, "Zed", edited.Storyteller)
	assert.Equal(t, domain.Evil, edited.WinningTeam)

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1484.0, state["Alice"].Rating)
}

func TestDeleteMatchesNeverRecordedHistory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, submission(roster.Team1))
	require.NoError(t, err)
	second, err := svc.Submit(ctx, submission(roster.Team2))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, second.GameID))
	withDeletion, err := svc.State(ctx)
	require.NoError(t, err)

	// A fresh service that only ever saw game 1 agrees exactly.
	fresh, _ := newTestService(t)
	_, err = fresh.Submit(ctx, submission(roster.Team1))
	require.NoError(t, err)
	reference, err := fresh.State(ctx)
	require.NoError(t, err)

	assert.Equal(t, reference, withDeletion)
}

func TestMutationExportsStateFiles(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, submission(roster.Team1))
	require.NoError(t, err)

	gamelog, err := os.ReadFile(filepath.Join(dir, constants.GamelogExportFile))
	require.NoError(t, err)
	var games []domain.MatchRecord
	require.NoError(t, json.Unmarshal(gamelog, &games))
	require.Len(t, games, 1)
	assert.Equal(t, int64(1), games[0].GameID)

	playersExport, err := os.ReadFile(filepath.Join(dir, constants.PlayersExportFile))
	require.NoError(t, err)
	var players []elo.Player
	require.NoError(t, json.Unmarshal(playersExport, &players))
	assert.Len(t, players, 4)
}
