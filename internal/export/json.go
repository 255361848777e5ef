// Package export writes the derived player state and the raw game log
// to JSON files after every mutation, the same pair of artifacts the
// charting and spreadsheet collaborators consume.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/RossFW/botc/internal/config"
	"github.com/RossFW/botc/internal/constants"
	"github.com/RossFW/botc/internal/domain"
	"github.com/RossFW/botc/internal/elo"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Exporter struct {
	dir    string
	logger zerolog.Logger
}

func NewExporter(cfg *config.Config, logger zerolog.Logger) *Exporter {
	return &Exporter{dir: cfg.DataDir, logger: logger}
}

// Write persists players.json and gamelog.json. The two files are
// independent, so they are written in parallel; either failure fails
// the export.
func (e *Exporter) Write(ctx context.Context, players elo.Players, log []domain.MatchRecord) error {
	sorted := make([]*elo.Player, 0, len(players))
	for _, p := range players {
		sorted = append(sorted, p)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.writeFile(constants.PlayersExportFile, sorted)
	})
	g.Go(func() error {
		return e.writeFile(constants.GamelogExportFile, log)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	e.logger.Debug().Int("players", len(sorted)).Int("games", len(log)).Msg("state exported")
	return nil
}

func (e *Exporter) writeFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(e.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
