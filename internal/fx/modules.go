package fx

import (
	"github.com/RossFW/botc/internal/api"
	"github.com/RossFW/botc/internal/config"
	"github.com/RossFW/botc/internal/database"
	"github.com/RossFW/botc/internal/elo"
	"github.com/RossFW/botc/internal/export"
	"github.com/RossFW/botc/internal/logger"
	"github.com/RossFW/botc/internal/repository"
	"github.com/RossFW/botc/internal/server"
	"github.com/RossFW/botc/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewRevisionRepository),
	// core
	fx.Provide(elo.NewEngine),
	fx.Provide(export.NewExporter),
	// remote client
	fx.Provide(api.NewPostgRESTClient),
	// svc
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewStatsService),
	fx.Provide(service.NewSyncService),
	// server
	fx.Provide(server.NewTrackerServer),
)
