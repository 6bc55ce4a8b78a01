//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/newscred/queue-guardian/broker"
	"github.com/newscred/queue-guardian/config"
	"github.com/newscred/queue-guardian/controllers"
	"github.com/newscred/queue-guardian/guardian"
	"github.com/newscred/queue-guardian/mailer"
	"github.com/newscred/queue-guardian/storage"
)

var (
	configInjectorSet = wire.NewSet(getConfiguration,
		wire.Bind(new(config.SeedDataConfig), new(*config.Config)),
		wire.Bind(new(config.HTTPConfig), new(*config.Config)),
		wire.Bind(new(config.RelationalDatabaseConfig), new(*config.Config)),
		wire.Bind(new(config.BrokerConnectionConfig), new(*config.Config)),
		wire.Bind(new(config.GuardianConfig), new(*config.Config)),
		wire.Bind(new(config.AuditExportConfig), new(*config.Config)),
		wire.Bind(new(config.MailConfig), new(*config.Config)))
	repositoryInjectorSet = wire.NewSet(GetMigrationConfig, storage.GetNewDataAccessor,
		getAppRepository, getMonitoredQueueRepository, getBrokerPrincipalRepository,
		getNotificationRepository, getLockRepository)
	relationalDBWithControllerSet = wire.NewSet(NewHTTPServiceContainer, NewServerListener,
		configInjectorSet, repositoryInjectorSet,
		wire.Bind(new(controllers.ServerLifecycleListener), new(*ServerLifecycleListenerImpl)),
		controllers.ControllerInjector, broker.GatewayInjector, mailer.DispatcherInjector,
		guardian.MetricsInjector, guardian.ServiceInjector)
)

// GetAppVersion retrieves the app version
func GetAppVersion() config.AppVersion {
	wire.Build(config.GetVersion)

	return ""
}

// GetHTTPServer wires up the full service container for the supplied CLI args
func GetHTTPServer(cliConfig *config.CLIConfig) (*HTTPServiceContainer, error) {
	wire.Build(relationalDBWithControllerSet)

	return &HTTPServiceContainer{}, nil
}
