package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"proxy-normalizer/internal/common"
	"proxy-normalizer/internal/config"
)

type hookParams struct {
	fx.In

	Logger    *zap.Logger
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Env       common.Env
}

func registerHooks(p hookParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting application",
				zap.String("env", string(p.Env)),
				zap.Int("sources", len(p.Config.Sources)),
				zap.Int("workers", p.Config.Workers.Count),
				zap.Int("run_interval", p.Config.Workers.RunInterval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Logger.Info("stopping application")
			return nil
		},
	})
}
