package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"proxy-normalizer/internal/common"
	"proxy-normalizer/internal/config"
	"proxy-normalizer/internal/exporter"
	"proxy-normalizer/internal/link"
	"proxy-normalizer/internal/metrics"
	"proxy-normalizer/internal/worker"
)

type Application struct {
	app    *fx.App
	logger *zap.Logger
}

func NewApplication(opts ...common.Option) *Application {
	options := buildOptions(opts)

	app := &Application{
		logger: options.Logger,
	}

	app.app = fx.New(
		modules(options),

		// Set timeouts
		fx.StopTimeout(30*time.Second),
		fx.StartTimeout(30*time.Second),
	)

	return app
}

func buildOptions(opts []common.Option) *common.ServiceOptions {
	options := &common.ServiceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Ensure required options are set
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	return options
}

// modules assembles the application graph shared by NewApplication and
// NewTestApplication.
func modules(options *common.ServiceOptions) fx.Option {
	configModule := config.Module
	if options.Config != nil {
		configModule = fx.Supply(options.Config)
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if options.Registry != nil {
		registerer, gatherer = options.Registry, options.Registry
	}

	return fx.Options(
		// Core modules
		configModule,
		link.Module,
		metrics.Module,
		worker.Module,
		exporter.Module,

		// Provide base dependencies
		fx.Provide(
			func() *zap.Logger { return options.Logger },
			func() common.Env { return options.Env },
			func() prometheus.Registerer { return registerer },
			func() prometheus.Gatherer { return gatherer },
		),

		// Configure fx
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),

		// Register lifecycle hooks
		fx.Invoke(registerHooks),
	)
}

func (a *Application) Start(ctx context.Context) error {
	return a.app.Start(ctx)
}

func (a *Application) Stop(ctx context.Context) error {
	return a.app.Stop(ctx)
}

// Wait delivers the first shutdown signal: SIGINT, SIGTERM or the end of a
// one-shot conversion run.
func (a *Application) Wait() <-chan fx.ShutdownSignal {
	return a.app.Wait()
}
