//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"sld/internal"
	"sld/internal/controllers"
	"sld/internal/discord"
	"sld/internal/models"
	"sld/internal/persist"
	"sld/internal/providers"
	"sld/internal/services"
	"sld/internal/steam"
	"sld/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,

		models.NewProfileStore,
		models.NewGroupStore,
		models.NewSettingsStore,

		persist.NewZstdCompressor,
		persist.NewFileManager,
		persist.NewBackup,
		persist.NewScheduler,

		steam.NewSteamClient,
		steam.NewResolver,

		services.NewDirectoryService,
		services.NewGuardService,
		services.NewDetectionService,

		discord.NewAttachmentFetcher,
		discord.NewBot,

		controllers.NewKeepAliveController,
		controllers.NewHealthController,
		controllers.NewApiController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
