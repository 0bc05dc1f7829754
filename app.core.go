package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AppProvider interface {
	Run() error
	Serve(context.Context, context.CancelFunc) func() error
	Stop(context.Context, context.Context) func() error
}

type App struct {
	logger   *zap.Logger
	config   *Config
	console  *Console
	cleanups []func()
}

// NewApp provides an instance of App wired to the standard streams.
func NewApp() (AppProvider, error) {
	config, err := LoadAndInitConfigs(GitCommit, GitTag, BuildTime)
	if err != nil {
		return nil, fmt.Errorf("failed to setup app configuration: %s", err)
	}
	app, err := NewAppWith(config, NewIDsHandler(), os.Stdin, os.Stdout)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// NewAppWith builds the App from an already loaded configuration.
func NewAppWith(config *Config, uid UIDHandler, in io.Reader, out io.Writer) (*App, error) {
	var cleanups []func()
	clean := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Setup the logging module, optionally backed by rotating files.
	clock := NewClock(config.IsProduction)
	var writer *RSyncWrite
	if config.LogFolder != "" {
		if err := os.MkdirAll(config.LogFolder, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create logging folder: %s", err)
		}
		writer = NewRSyncWriter(config, clock)
		cleanups = append(cleanups, func() {
			if cerr := writer.Close(); cerr != nil {
				fmt.Println("error during closing of log file: ", cerr)
			}
		})
	}
	logger, flusher := SetupLogging(config, writer, NewTickClock(clock), uid.Generate(SessionIDPrefix))
	cleanups = append(cleanups, func() {
		if ferr := flusher(); ferr != nil {
			fmt.Println("error during flushing of logs: ", ferr)
		}
	})

	// Setup the library store and its manager.
	store, closeStore, err := OpenBookStore(context.Background(), logger, config)
	if err != nil {
		clean()
		return nil, fmt.Errorf("failed to setup %s storage: %s", config.Storage, err)
	}
	cleanups = append(cleanups, func() {
		if cerr := closeStore(); cerr != nil {
			logger.Error("failed to close storage", zap.String("app.storage", config.Storage), zap.Error(cerr))
		}
	})

	manager := NewLibraryManager(logger, store)

	return &App{
		logger:   logger,
		config:   config,
		console:  NewConsole(logger, manager, in, out),
		cleanups: cleanups,
	}, nil
}

// Run starts the library session and a goroutine which is responsible
// to stop it on termination signals.
func (app *App) Run() error {
	defer app.Clean()
	nCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sCtx, end := context.WithCancel(nCtx)
	defer end()

	g, gCtx := errgroup.WithContext(sCtx)

	g.Go(app.Serve(gCtx, end))
	g.Go(app.Stop(nCtx, gCtx))

	err := g.Wait()
	app.logger.Debug("library session stopped",
		zap.String("app.storage", app.config.Storage),
		zap.Error(err),
	)
	return err
}

// Clean calls all registered cleanups functions in reverse order.
func (app *App) Clean() {
	for i := len(app.cleanups) - 1; i >= 0; i-- {
		app.cleanups[i]()
	}
}

// Serve runs the interactive console. Its returned error will be caught
// by the errorgroup. The session context is cancelled once it returns.
func (app *App) Serve(ctx context.Context, end context.CancelFunc) func() error {
	return func() error {
		defer end()
		app.logger.Debug("library session starting", zap.String("app.storage", app.config.Storage))
		return app.console.Run(ctx)
	}
}

// Stop listens for the group context and states the reason of the session
// end. We explicitly return `nil` to allow the errorgroup catches only the
// `Serve` method result.
func (app *App) Stop(nCtx, gCtx context.Context) func() error {
	return func() error {
		<-gCtx.Done()

		if nCtx.Err() != nil {
			app.logger.Debug("library session stopping. reason: requested to stop")
		} else {
			app.logger.Debug("library session stopping. reason: session ended")
		}
		return nil
	}
}
