package worker

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"proxy-normalizer/internal/config"
	"proxy-normalizer/internal/domain"
	"proxy-normalizer/internal/interfaces"
)

var Module = fx.Options(
	fx.Provide(NewPool),
	fx.Provide(func(p *Pool) interfaces.WorkerPool { return p }),
	fx.Provide(func(
		cfg *config.Config,
		pool interfaces.WorkerPool,
		sink interfaces.ResultSink,
		metrics domain.MetricsCollector,
		logger *zap.Logger,
	) interfaces.Scheduler {
		return NewScheduler(
			time.Duration(cfg.Workers.RunInterval)*time.Second,
			cfg.Sources,
			pool,
			sink,
			metrics,
			logger,
		)
	}),
	fx.Invoke(registerHooks),
)

// registerHooks runs the scheduler in the background. A one-shot run shuts
// the application down when it is done, with exit code 1 if any source
// failed.
func registerHooks(lc fx.Lifecycle, scheduler interfaces.Scheduler, shutdowner fx.Shutdowner, logger *zap.Logger) {
	var cancel context.CancelFunc
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var runCtx context.Context
			runCtx, cancel = context.WithCancel(context.Background())

			go func() {
				defer close(done)

				err := scheduler.Start(runCtx)
				if runCtx.Err() != nil {
					return
				}

				exitCode := 0
				if err != nil {
					logger.Error("conversion finished with errors", zap.Error(err))
					exitCode = 1
				}
				if err := shutdowner.Shutdown(fx.ExitCode(exitCode)); err != nil {
					logger.Error("failed to shut down", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := scheduler.Stop(); err != nil {
				return err
			}
			cancel()

			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
