package service

import (
	"context"

	"github.com/RossFW/botc/internal/api"
	"github.com/RossFW/botc/internal/constants"

	"github.com/rs/zerolog"
)

// SyncService mirrors the game log against a remote games table.
type SyncService struct {
	remote  *api.PostgRESTClient
	matches *MatchService
	logger  zerolog.Logger
}

func NewSyncService(remote *api.PostgRESTClient, matches *MatchService, logger zerolog.Logger) *SyncService {
	return &SyncService{remote: remote, matches: matches, logger: logger}
}

// Import pulls remote games into the local log, skipping ids that
// already exist, then replays. Returns the number of imported games.
func (s *SyncService) Import(ctx context.Context) (int, error) {
	remoteCtx, cancel := context.WithTimeout(ctx, constants.RemoteTimeout)
	defer cancel()

	remote, err := s.remote.FetchGames(remoteCtx)
	if err != nil {
		return 0, err
	}

	local, err := s.matches.GameLog(ctx)
	if err != nil {
		return 0, err
	}
	existing := make(map[int64]struct{}, len(local))
	for _, g := range local {
		existing[g.GameID] = struct{}{}
	}

	imported := 0
	for _, g := range remote {
		if _, ok := existing[g.GameID]; ok {
			continue
		}
		if err := s.matches.repo.Insert(ctx, g); err != nil {
			return imported, err
		}
		imported++
	}

	if imported > 0 {
		if err := s.matches.Refresh(ctx); err != nil {
			return imported, err
		}
	}

	s.logger.Info().Int("imported", imported).Int("remote_total", len(remote)).Msg("remote import finished")
	return imported, nil
}

// Export pushes every local game to the remote table; the remote side
// ignores ids it already has.
func (s *SyncService) Export(ctx context.Context) (int, error) {
	local, err := s.matches.GameLog(ctx)
	if err != nil {
		return 0, err
	}

	remoteCtx, cancel := context.WithTimeout(ctx, constants.RemoteTimeout)
	defer cancel()

	if err := s.remote.PushGames(remoteCtx, local); err != nil {
		return 0, err
	}

	s.logger.Info().Int("pushed", len(local)).Msg("remote export finished")
	return len(local), nil
}
