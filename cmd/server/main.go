package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rastyraw/CypherCore-Audits/internal/service"
	"github.com/rastyraw/CypherCore-Audits/internal/storage"
)

const (
	commandUseName              = "server"
	commandShortDescription     = "Run the submissions server"
	commandLongDescription      = "Launch the HTTP server handling contact, booking and chat submissions"
	missingConfigurationMessage = "missing required configuration"
	loggerCreationErrorMessage  = "logger"
	logEventListening           = "listening"
	logEventShuttingDown        = "shutting_down"
	logFieldAddress             = "addr"
	logFieldStoreDriver         = "store_driver"

	flagNameApplicationAddress  = "app-addr"
	flagNameStoreDriver         = "store-driver"
	flagNameStoreDataSourceName = "store-dsn"
	flagNameStaticDirectory     = "static-dir"

	flagUsageApplicationAddress  = "address for the HTTP server to listen on"
	flagUsageStoreDriver         = "record store driver (memory, sqlite or postgres)"
	flagUsageStoreDataSourceName = "data source name for the sqlite and postgres drivers"
	flagUsageStaticDirectory     = "directory of static marketing pages to serve"

	environmentKeyApplicationAddress  = "APP_ADDR"
	environmentKeyStoreDriver         = "STORE_DRIVER"
	environmentKeyStoreDataSourceName = "STORE_DSN"
	environmentKeyStaticDirectory     = "STATIC_DIR"

	defaultApplicationAddress = ":8080"

	loggerContextOpenStore = "open_store"
	loggerContextServer    = "server"
	loggerContextShutdown  = "shutdown"

	readHeaderTimeoutSeconds    = 5
	shutdownTimeoutSeconds      = 10
	unexpectedArgumentsMessage  = "unexpected command arguments"
	commandInitializationFailed = "failed to configure command"
	flagNotDefinedMessage       = "flag %s not defined"
	environmentConfigurationErr = "failed to apply environment configuration"
)

// ServerConfig captures configuration needed to run the server.
type ServerConfig struct {
	ApplicationAddress  string
	StoreDriver         string
	StoreDataSourceName string
	StaticDirectory     string
}

// StoreOpener opens the record store described by the given configuration.
type StoreOpener func(storage.Config) (storage.Store, error)

// ServerApplication constructs and executes the server command.
type ServerApplication struct {
	configurationLoader *viper.Viper
	storeOpener         StoreOpener
}

// NewServerApplication creates a ServerApplication with default dependencies.
func NewServerApplication() *ServerApplication {
	return &ServerApplication{
		configurationLoader: viper.New(),
		storeOpener:         openConfiguredStore,
	}
}

// WithStoreOpener overrides the store opener dependency.
func (application *ServerApplication) WithStoreOpener(storeOpener StoreOpener) *ServerApplication {
	application.storeOpener = storeOpener
	return application
}

func openConfiguredStore(configuration storage.Config) (storage.Store, error) {
	if configuration.DriverName == storage.DriverNameMemory {
		return storage.NewMemoryStore(), nil
	}

	database, openErr := storage.OpenDatabase(configuration)
	if openErr != nil {
		return nil, openErr
	}
	if migrateErr := storage.AutoMigrate(database); migrateErr != nil {
		return nil, migrateErr
	}
	return storage.NewDatabaseStore(database), nil
}

// Command builds the Cobra command for the server.
func (application *ServerApplication) Command() (*cobra.Command, error) {
	rootCommand := &cobra.Command{
		Use:   commandUseName,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  application.runCommand,
	}

	if configurationErr := application.configureCommand(rootCommand); configurationErr != nil {
		return nil, configurationErr
	}

	return rootCommand, nil
}

func (application *ServerApplication) configureCommand(command *cobra.Command) error {
	application.configurationLoader.SetDefault(environmentKeyApplicationAddress, defaultApplicationAddress)
	application.configurationLoader.SetDefault(environmentKeyStoreDriver, storage.DriverNameMemory)
	application.configurationLoader.SetDefault(environmentKeyStoreDataSourceName, "")
	application.configurationLoader.SetDefault(environmentKeyStaticDirectory, "")
	application.configurationLoader.AutomaticEnv()

	commandFlags := command.Flags()
	commandFlags.String(flagNameApplicationAddress, defaultApplicationAddress, flagUsageApplicationAddress)
	commandFlags.String(flagNameStoreDriver, storage.DriverNameMemory, flagUsageStoreDriver)
	commandFlags.String(flagNameStoreDataSourceName, "", flagUsageStoreDataSourceName)
	commandFlags.String(flagNameStaticDirectory, "", flagUsageStaticDirectory)

	flagBindings := []struct {
		environmentKey string
		flagName       string
	}{
		{environmentKeyApplicationAddress, flagNameApplicationAddress},
		{environmentKeyStoreDriver, flagNameStoreDriver},
		{environmentKeyStoreDataSourceName, flagNameStoreDataSourceName},
		{environmentKeyStaticDirectory, flagNameStaticDirectory},
	}

	for _, binding := range flagBindings {
		if bindErr := application.bindFlag(commandFlags, binding.environmentKey, binding.flagName); bindErr != nil {
			return bindErr
		}
		if environmentErr := application.applyEnvironmentConfiguration(commandFlags, binding.environmentKey, binding.flagName); environmentErr != nil {
			return environmentErr
		}
	}

	return nil
}

func (application *ServerApplication) bindFlag(flagSet *pflag.FlagSet, environmentKey string, flagName string) error {
	flag := flagSet.Lookup(flagName)
	if flag == nil {
		return fmt.Errorf(flagNotDefinedMessage, flagName)
	}

	if bindErr := application.configurationLoader.BindPFlag(environmentKey, flag); bindErr != nil {
		return bindErr
	}

	return nil
}

func (application *ServerApplication) applyEnvironmentConfiguration(flagSet *pflag.FlagSet, environmentKey string, flagName string) error {
	environmentValue, environmentFound := os.LookupEnv(environmentKey)
	if !environmentFound {
		return nil
	}

	if setErr := flagSet.Set(flagName, environmentValue); setErr != nil {
		return fmt.Errorf("%s: %w", environmentConfigurationErr, setErr)
	}

	return nil
}

func (application *ServerApplication) runCommand(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return fmt.Errorf("%s: %s", unexpectedArgumentsMessage, strings.Join(arguments, " "))
	}

	serverConfig := ServerConfig{
		ApplicationAddress:  application.configurationLoader.GetString(environmentKeyApplicationAddress),
		StoreDriver:         strings.TrimSpace(application.configurationLoader.GetString(environmentKeyStoreDriver)),
		StoreDataSourceName: strings.TrimSpace(application.configurationLoader.GetString(environmentKeyStoreDataSourceName)),
		StaticDirectory:     strings.TrimSpace(application.configurationLoader.GetString(environmentKeyStaticDirectory)),
	}

	if validationErr := ensureRequiredConfiguration(serverConfig); validationErr != nil {
		return validationErr
	}

	logger, loggerErr := zap.NewProduction()
	if loggerErr != nil {
		return fmt.Errorf("%s: %w", loggerCreationErrorMessage, loggerErr)
	}
	defer func() {
		_ = logger.Sync()
	}()

	store, storeErr := application.storeOpener(storage.Config{
		DriverName:     serverConfig.StoreDriver,
		DataSourceName: serverConfig.StoreDataSourceName,
	})
	if storeErr != nil {
		logger.Fatal(loggerContextOpenStore, zap.Error(storeErr))
	}

	submissionService := service.NewDefaultSubmissionService(store, logger)
	retrievalService := service.NewRetrievalService(store)
	router := buildRouter(submissionService, retrievalService, logger, serverConfig.StaticDirectory)

	httpServer := &http.Server{
		Addr:              serverConfig.ApplicationAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeoutSeconds * time.Second,
	}

	signalContext, stopSignals := signal.NotifyContext(command.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	serveErrors := make(chan error, 1)
	go func() {
		serveErrors <- httpServer.ListenAndServe()
	}()

	logger.Info(logEventListening,
		zap.String(logFieldAddress, serverConfig.ApplicationAddress),
		zap.String(logFieldStoreDriver, serverConfig.StoreDriver),
	)

	select {
	case serveErr := <-serveErrors:
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Fatal(loggerContextServer, zap.Error(serveErr))
		}
	case <-signalContext.Done():
		logger.Info(logEventShuttingDown)
		shutdownContext, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeoutSeconds*time.Second)
		defer cancelShutdown()
		if shutdownErr := httpServer.Shutdown(shutdownContext); shutdownErr != nil {
			logger.Error(loggerContextShutdown, zap.Error(shutdownErr))
		}
	}

	return nil
}

func ensureRequiredConfiguration(configuration ServerConfig) error {
	var missingParameters []string

	if configuration.StoreDriver == "" {
		missingParameters = append(missingParameters, flagNameStoreDriver)
	}

	if configuration.StoreDriver != "" && configuration.StoreDriver != storage.DriverNameMemory && configuration.StoreDataSourceName == "" {
		missingParameters = append(missingParameters, flagNameStoreDataSourceName)
	}

	if len(missingParameters) == 0 {
		return nil
	}

	return fmt.Errorf("%s: %s", missingConfigurationMessage, strings.Join(missingParameters, ", "))
}

func main() {
	application := NewServerApplication()
	rootCommand, commandErr := application.Command()
	if commandErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", commandInitializationFailed, commandErr)
		os.Exit(1)
	}

	if executeErr := rootCommand.Execute(); executeErr != nil {
		os.Exit(1)
	}
}
