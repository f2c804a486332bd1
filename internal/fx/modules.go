package fx

import (
	"database/sql"

	"go.uber.org/fx"

	"cs2-simulator/internal/api"
	"cs2-simulator/internal/config"
	"cs2-simulator/internal/database"
	"cs2-simulator/internal/db"
	"cs2-simulator/internal/repository"
	"cs2-simulator/internal/server"
	"cs2-simulator/internal/service"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// Module wires everything except the logger, which the server and the
// command line tool provide differently.
var Module = fx.Options(
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewTeamRepository),
	fx.Provide(repository.NewCareerRepository),
	fx.Provide(repository.NewCatalogRepository),
	fx.Provide(repository.NewSeriesRepository),
	// roster feed client
	fx.Provide(api.NewRosterClient),
	// svc
	fx.Provide(service.NewSimulationService),
	fx.Provide(service.NewCareerService),
	fx.Provide(service.NewRosterService),
	// server
	fx.Provide(server.NewSimulatorServer),
)
