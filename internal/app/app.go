package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/haguru/bookstore/config"
	mongoBookRepo "github.com/haguru/bookstore/internal/bookrepo/mongo"
	"github.com/haguru/bookstore/internal/bookservice"
	"github.com/haguru/bookstore/internal/commands"
	"github.com/haguru/bookstore/internal/interfaces"
	"github.com/haguru/bookstore/pkg/databases/mongo"
	"github.com/haguru/bookstore/pkg/metrics"
	"github.com/haguru/bookstore/pkg/zerolog"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// App holds the configuration and the collaborators shared by every command.
// The database connection is not one of them: each command opens and closes its own.
type App struct {
	Config     *config.ServiceConfig
	Logger     interfaces.Logger
	Metrics    interfaces.Metrics
	Dispatcher *commands.Dispatcher
	out        io.Writer
}

// CommandError is returned by Run when a command fails. It has already been
// logged, so callers only need it for the exit status.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewApp loads and validates the configuration and builds the dispatcher.
// Command output goes to out and logs go to errOut. A non-empty logLevel
// overrides the configured one.
func NewApp(configPath, envPath string, out, errOut io.Writer, logLevel string) (*App, error) {
	cfg, err := config.LoadConfig(configPath, envPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		if errors, ok := err.(structValidator.ValidationErrors); ok {
			return nil, fmt.Errorf("validation error: %s", errors)
		}
		return nil, fmt.Errorf("validation error: %w", err)
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName, errOut)
	logger.SetLevel(cfg.LogLevel)
	logger = logger.WithContext(map[string]interface{}{RunIDKey: uuid.NewString()})

	app := &App{
		Config: cfg,
		Logger: logger,
		out:    out,
	}
	app.Metrics = app.initializeMetrics()
	app.Dispatcher = commands.NewDispatcher(commands.Table(), app.openBookService, out)

	logger.Debug("App initialized", "config", configPath, "collection", cfg.Database.MongoDB.Collection)
	return app, nil
}

// Run dispatches one command, records its outcome and pushes the metrics when
// a Pushgateway is configured.
func (app *App) Run(ctx context.Context, name string, args []string) error {
	label := name
	if _, ok := app.Dispatcher.Lookup(name); !ok {
		label = UnknownCommand
	}

	runCtx := ctx
	if timeout := app.Config.Database.MongoDB.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	err := app.Dispatcher.Dispatch(runCtx, name, args)
	status := StatusSuccess
	if err != nil {
		status = StatusError
		app.Logger.Error("Command failed", "command", name, "error", err)
		err = &CommandError{Command: name, Err: err}
	}

	app.Metrics.IncCounterVec(CommandsTotal, label, status)
	app.Metrics.ObserveHistogramVec(CommandDurationSeconds, time.Since(start).Seconds(), label)

	if pushErr := app.Metrics.Push(ctx, app.Config.Metrics.PushgatewayURL, app.Config.Metrics.Job); pushErr != nil {
		app.Logger.Warn("Failed to push metrics", "error", pushErr)
	}

	return err
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	appMetrics.RegisterCounterVec(CommandsTotal, CommandsTotalHelp, []string{LabelCommand, LabelStatus})
	appMetrics.RegisterCounter(ConnectFailuresTotal, ConnectFailuresTotalHelp)
	appMetrics.RegisterHistogram(ConnectDurationSeconds, ConnectDurationSecondsHelp, ConnectDurationSecondsBuckets)
	appMetrics.RegisterHistogramVec(
		CommandDurationSeconds,
		CommandDurationSecondsHelp,
		CommandDurationSecondsBuckets,
		[]string{LabelCommand})

	return appMetrics
}

// openBookService connects to MongoDB and wires a service over the configured
// collection. The returned func disconnects.
func (app *App) openBookService(ctx context.Context) (interfaces.BookService, func(), error) {
	dbConfig := &app.Config.Database.MongoDB

	dbClient, err := mongo.NewMongoDB(dbConfig, app.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}

	start := time.Now()
	err = dbClient.Connect(ctx, dbConfig.DSN)
	app.Metrics.ObserveHistogram(ConnectDurationSeconds, time.Since(start).Seconds())
	if err != nil {
		app.Metrics.IncCounter(ConnectFailuresTotal)
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	release := func() {
		if err := dbClient.Disconnect(context.Background()); err != nil {
			app.Logger.Warn("Failed to disconnect from MongoDB", "error", err)
		}
	}

	bookRepo, err := mongoBookRepo.NewMongoBookRepository(dbClient.Collection())
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("failed to initialize book repository: %w", err)
	}

	return bookservice.NewBookService(bookRepo, app.Logger, app.out), release, nil
}
