//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"codetrack/internal"
	"codetrack/internal/controllers"
	"codetrack/internal/fetcher"
	"codetrack/internal/ledger"
	"codetrack/internal/providers"
	"codetrack/internal/scheduler"
	"codetrack/internal/services"
	"codetrack/internal/store"
	"codetrack/internal/structures"
)

var dashboardSet = wire.NewSet(
	providers.NewConfigProvider,
	ProvideLogger,
	providers.NewMetricsProvider,

	store.NewZstdCompressor,
	store.NewStore,
	fetcher.NewFetcher,
	ledger.NewLedger,
	wire.Bind(new(ledger.LedgerInterface), new(*ledger.Ledger)),
	services.NewLeetCodeService,
	services.NewGfgService,
	services.NewDashboardService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		dashboardSet,
		providers.NewInstrumentedCacheProvider,
		scheduler.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitDashboard(cfg *structures.CliFlags) (*internal.Console, func(), error) {

	wire.Build(
		dashboardSet,
		internal.NewConsole,
	)

	return nil, nil, nil
}
