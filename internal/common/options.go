package common

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"proxy-normalizer/internal/config"
)

// Env names the deployment environment, taken from APP_ENV.
type Env string

// ServiceOptions defines common options for building the application
type ServiceOptions struct {
	Logger   *zap.Logger
	Config   *config.Config
	Env      Env
	Registry *prometheus.Registry
}

// Option defines a service option modifier
type Option func(*ServiceOptions)

func WithLogger(logger *zap.Logger) Option {
	return func(o *ServiceOptions) {
		o.Logger = logger
	}
}

// WithConfig skips loading the configuration from CONFIG_PATH.
func WithConfig(cfg *config.Config) Option {
	return func(o *ServiceOptions) {
		o.Config = cfg
	}
}

func WithEnv(env string) Option {
	return func(o *ServiceOptions) {
		o.Env = Env(env)
	}
}

// WithRegistry registers metrics on reg instead of the default registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *ServiceOptions) {
		o.Registry = reg
	}
}
