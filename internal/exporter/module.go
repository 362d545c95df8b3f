package exporter

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"proxy-normalizer/internal/config"
	"proxy-normalizer/internal/domain"
	"proxy-normalizer/internal/exporter/clash"
	"proxy-normalizer/internal/exporter/jsonfile"
	"proxy-normalizer/internal/interfaces"
)

// Module exports the exporter module
var Module = fx.Options(
	fx.Provide(NewManager),
	fx.Provide(func(m *Manager) interfaces.ResultSink { return m }),
)

type Manager struct {
	exporters map[domain.SourceName][]domain.Exporter
	logger    *zap.Logger
}

func NewManager(cfg *config.Config, logger *zap.Logger) (*Manager, error) {
	manager := &Manager{
		exporters: make(map[domain.SourceName][]domain.Exporter),
		logger:    logger.With(zap.String("component", "exporter")),
	}

	for _, expCfg := range cfg.Exporters {
		exporter, err := createExporter(&expCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create exporter %s: %w", expCfg.Type, err)
		}

		for _, watch := range expCfg.Watches {
			manager.exporters[watch] = append(
				manager.exporters[watch],
				exporter,
			)
		}
	}

	return manager, nil
}

func (m *Manager) Exporters() map[domain.SourceName][]domain.Exporter {
	return m.exporters
}

// Export hands the records of a source to every exporter watching it.
// Failures are logged and do not stop the remaining exporters.
func (m *Manager) Export(source domain.SourceName, proxies []domain.Proxy) {
	for _, exporter := range m.exporters[source] {
		if err := exporter.Export(source, proxies); err != nil {
			m.logger.Error("failed to export proxies",
				zap.String("source", string(source)),
				zap.Int("proxies", len(proxies)),
				zap.Error(err),
			)
		}
	}
}

func createExporter(cfg *config.ExporterConfig) (domain.Exporter, error) {
	switch cfg.Type {
	case config.ExporterTypeClash:
		return clash.New(cfg.Raw)
	case config.ExporterTypeJSON:
		return jsonfile.New(cfg.Raw)
	default:
		return nil, fmt.Errorf("unknown exporter type: %s", cfg.Type)
	}
}
