package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/newscred/queue-guardian/config"
	"github.com/newscred/queue-guardian/guardian"
	"github.com/newscred/queue-guardian/storage"
	"github.com/newscred/queue-guardian/storage/data"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ServerLifecycleListenerImpl is the server lifecycle listener implementation for the main runtime
type ServerLifecycleListenerImpl struct {
	shutdownListener chan bool
	serverStartErr   error
}

// StartingServer is called just before the HTTP listener is started
func (impl *ServerLifecycleListenerImpl) StartingServer() {}

// ServerStartFailed is called when the HTTP listener could not bind or crashed
func (impl *ServerLifecycleListenerImpl) ServerStartFailed(err error) {
	if err == http.ErrServerClosed {
		return
	}
	impl.serverStartErr = err
	impl.shutdownListener <- true
}

// ServerShutdownCompleted is called once graceful shutdown finishes
func (impl *ServerLifecycleListenerImpl) ServerShutdownCompleted() {
	impl.shutdownListener <- true
}

// NewServerListener creates the listener main waits on for server shutdown
func NewServerListener() *ServerLifecycleListenerImpl {
	return &ServerLifecycleListenerImpl{shutdownListener: make(chan bool)}
}

// HTTPServiceContainer wrapper for the services spun up by the injector
type HTTPServiceContainer struct {
	Configuration *config.Config
	Server        *http.Server
	DataAccessor  storage.DataAccessor
	Guardian      guardian.QueueGuardian
	Listener      *ServerLifecycleListenerImpl
}

// NewHTTPServiceContainer builds the container from the wired services
func NewHTTPServiceContainer(configuration *config.Config, server *http.Server, dataAccessor storage.DataAccessor, guardianService guardian.QueueGuardian, listener *ServerLifecycleListenerImpl) *HTTPServiceContainer {
	return &HTTPServiceContainer{Configuration: configuration, Server: server, DataAccessor: dataAccessor, Guardian: guardianService, Listener: listener}
}

// GetMigrationConfig creates the migration configuration from the CLI args
func GetMigrationConfig(cliConfig *config.CLIConfig) *storage.MigrationConfig {
	return &storage.MigrationConfig{MigrationEnabled: cliConfig.IsMigrationEnabled(), MigrationSource: cliConfig.MigrationSource}
}

func getConfiguration(cliConfig *config.CLIConfig) (*config.Config, error) {
	if len(cliConfig.ConfigPath) > 0 {
		return config.GetConfiguration(cliConfig.ConfigPath)
	}
	return config.GetAutoConfiguration()
}

func getAppRepository(dataAccessor storage.DataAccessor) storage.AppRepository {
	return dataAccessor.GetAppRepository()
}

func getMonitoredQueueRepository(dataAccessor storage.DataAccessor) storage.MonitoredQueueRepository {
	return dataAccessor.GetMonitoredQueueRepository()
}

func getBrokerPrincipalRepository(dataAccessor storage.DataAccessor) storage.BrokerPrincipalRepository {
	return dataAccessor.GetBrokerPrincipalRepository()
}

func getNotificationRepository(dataAccessor storage.DataAccessor) storage.NotificationRepository {
	return dataAccessor.GetNotificationRepository()
}

func getLockRepository(dataAccessor storage.DataAccessor) storage.LockRepository {
	return dataAccessor.GetLockRepository()
}

// ErrMigrationSrcNotDir is returned when migration source specified is not a directory
var ErrMigrationSrcNotDir = errors.New("migration source is not a directory")

var (
	exit = func(code int) {
		os.Exit(code)
	}
	consolePrintln = func(output string) {
		fmt.Println(output)
	}
	getApp = func(httpServiceContainer *HTTPServiceContainer) (*data.App, error) {
		return httpServiceContainer.DataAccessor.GetAppRepository().GetApp()
	}
	startAppInit = func(httpServiceContainer *HTTPServiceContainer, seedData *config.SeedData) error {
		return httpServiceContainer.DataAccessor.GetAppRepository().StartAppInit(seedData)
	}
	completeAppInit = func(httpServiceContainer *HTTPServiceContainer) error {
		return httpServiceContainer.DataAccessor.GetAppRepository().CompleteAppInit()
	}
	shutdownServer = func(httpServiceContainer *HTTPServiceContainer) {
		serverShutdownContext, shutdownTimeoutCancelFunc := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownTimeoutCancelFunc()
		httpServiceContainer.Server.Shutdown(serverShutdownContext)
		httpServiceContainer.Listener.ServerShutdownCompleted()
	}
)

func parseArgs(programName string, args []string) (cliConfig *config.CLIConfig, output string, err error) {
	flags := flag.NewFlagSet(programName, flag.ContinueOnError)
	var buf bytes.Buffer
	flags.SetOutput(&buf)

	var conf config.CLIConfig
	flags.StringVar(&conf.ConfigPath, "config", "", "Config file location")
	flags.StringVar(&conf.MigrationSource, "migrate", "", "Migration source folder")
	flags.BoolVar(&conf.StopOnConfigChange, "stop-on-conf-change", false, "Stop the process when the config file changes")
	flags.BoolVar(&conf.DoNotWatchConfigChange, "do-not-watch-conf-change", false, "Do not watch config file for changes")

	err = flags.Parse(args)
	if err != nil {
		return nil, buf.String(), err
	}

	if conf.IsMigrationEnabled() {
		fileInfo, statErr := os.Stat(conf.MigrationSource)
		if statErr != nil {
			return nil, buf.String(), statErr
		}
		if !fileInfo.IsDir() {
			return nil, buf.String(), ErrMigrationSrcNotDir
		}
		absPath, pathErr := filepath.Abs(conf.MigrationSource)
		if pathErr != nil {
			return nil, buf.String(), pathErr
		}
		conf.MigrationSource = "file://" + absPath
	}

	return &conf, buf.String(), nil
}

func setupLogger(logConfig config.LogConfig) {
	switch logConfig.GetLogLevel() {
	case config.DebugLevel:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case config.ErrorLevel:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if logConfig.IsLoggerConfigAvailable() {
		logWriter := &lumberjack.Logger{
			Filename:   logConfig.GetLogFilename(),
			MaxSize:    int(logConfig.GetMaxLogFileSize()),
			MaxBackups: int(logConfig.GetMaxLogBackups()),
			MaxAge:     int(logConfig.GetMaxAgeForALogFile()),
			Compress:   logConfig.IsCompressionEnabledOnLogBackups(),
		}
		log.SetOutput(logWriter)
		zlog.Logger = zlog.Output(logWriter)
	}
}

func createSeedData(dataAccessor storage.DataAccessor, seedData *config.SeedData) {
	for _, seedAccount := range seedData.Accounts {
		account, err := data.NewAccount(seedAccount.Email, seedAccount.Admin)
		if err == nil {
			_, err = dataAccessor.GetAccountRepository().Store(account)
		}
		if err != nil {
			log.Println("failed to create seed account", seedAccount.Email, err)
		}
	}
	for _, seedPrincipal := range seedData.Principals {
		var owner *data.Account
		if len(seedPrincipal.OwnerEmail) > 0 {
			var err error
			owner, err = dataAccessor.GetAccountRepository().GetByEmail(seedPrincipal.OwnerEmail)
			if err != nil {
				log.Println("owner account missing for seed principal", seedPrincipal.Username, err)
				owner = nil
			}
		}
		principal, err := data.NewBrokerPrincipal(seedPrincipal.Username, owner)
		if err == nil {
			_, err = dataAccessor.GetBrokerPrincipalRepository().Store(principal)
		}
		if err != nil {
			log.Println("failed to create seed principal", seedPrincipal.Username, err)
		}
	}
}

func initAppData(httpServiceContainer *HTTPServiceContainer, app *data.App) {
	seedData := httpServiceContainer.Configuration.GetSeedData()
	seedDataInApp := app.GetSeedData()
	if app.GetStatus() != data.NotInitialized && seedDataInApp != nil && seedDataInApp.DataHash == seedData.DataHash {
		return
	}
	initErr := startAppInit(httpServiceContainer, &seedData)
	switch initErr {
	case nil:
		createSeedData(httpServiceContainer.DataAccessor, &seedData)
		if completeErr := completeAppInit(httpServiceContainer); completeErr != nil {
			log.Println(completeErr)
		}
	case storage.ErrAppInitializing:
		log.Println("App initialization in progress in another replica")
	case storage.ErrOptimisticAppInit:
		log.Println("App initialization completed by another replica")
	default:
		log.Println(initErr)
	}
}

func main() {
	log.Println("Queue Guardian - " + string(GetAppVersion()))
	cliConfig, output, cliCfgErr := parseArgs(os.Args[0], os.Args[1:])
	if cliCfgErr != nil {
		if cliCfgErr != flag.ErrHelp {
			log.Println(cliCfgErr)
		}
		consolePrintln(output)
		exit(1)
	}
	log.Println("Configuration file (optional): " + cliConfig.ConfigPath)
	httpServiceContainer, err := GetHTTPServer(cliConfig)
	if err != nil {
		log.Println(err)
		exit(3)
	}
	setupLogger(httpServiceContainer.Configuration)
	app, appErr := getApp(httpServiceContainer)
	if appErr != nil {
		log.Println(appErr)
		exit(4)
	}
	initAppData(httpServiceContainer, app)
	httpServiceContainer.Guardian.Start()
	cliConfig.NotifyOnConfigFileChange(func() {
		log.Println("Config file changed")
		if cliConfig.StopOnConfigChange {
			shutdownServer(httpServiceContainer)
		}
	})
	<-httpServiceContainer.Listener.shutdownListener
	httpServiceContainer.Guardian.Stop()
	cliConfig.StopWatcher()
	if httpServiceContainer.Listener.serverStartErr != nil {
		log.Println(httpServiceContainer.Listener.serverStartErr)
		exit(3)
	}
}
