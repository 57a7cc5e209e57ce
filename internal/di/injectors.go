//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"warboard/internal"
	"warboard/internal/clash"
	"warboard/internal/controllers"
	"warboard/internal/events"
	"warboard/internal/poller"
	"warboard/internal/providers"
	"warboard/internal/scoreboard"
	"warboard/internal/services"
	"warboard/internal/session"
	"warboard/internal/structures"
	"warboard/internal/views"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		services.NewZstdCompressor,
		services.NewSnapshotStore,
		clash.NewClient,
		wire.Bind(new(clash.WarFetcher), new(*clash.Client)),
		wire.Bind(new(clash.ClanSearcher), new(*clash.Client)),
		events.NewHub,
		events.NewPublisher,
		scoreboard.NewEventWindowHost,
		scoreboard.NewBridge,
		poller.NewFactory,
		views.NewRenderer,
		session.NewManager,

		controllers.NewWarController,
		controllers.NewScoreboardController,
		controllers.NewSearchController,
		controllers.NewEventsController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
