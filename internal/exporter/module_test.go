package exporter

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"proxy-normalizer/internal/config"
	"proxy-normalizer/internal/domain"
)

type failingExporter struct{}

func (failingExporter) Export(domain.SourceName, []domain.Proxy) error {
	return errors.New("disk full")
}

func TestNewManager(t *testing.T) {
	dir := t.TempDir()
	clashPath := filepath.Join(dir, "clash.yaml")
	jsonPath := filepath.Join(dir, "proxies.json")

	cfg := &config.Config{
		Exporters: []config.ExporterConfig{
			{
				Type:    config.ExporterTypeClash,
				Watches: []domain.SourceName{"main", "backup"},
				Raw:     json.RawMessage(`{"path": "` + filepath.ToSlash(clashPath) + `"}`),
			},
			{
				Type:    config.ExporterTypeJSON,
				Watches: []domain.SourceName{"main"},
				Raw:     json.RawMessage(`{"path": "` + filepath.ToSlash(jsonPath) + `"}`),
			},
		},
	}

	manager, err := NewManager(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, manager.Exporters()["main"], 2)
	assert.Len(t, manager.Exporters()["backup"], 1)

	manager.Export("main", []domain.Proxy{{"name": "a", "type": "ss", "server": "h", "port": 1}})

	assert.FileExists(t, clashPath)
	assert.FileExists(t, jsonPath)

	_, err = os.Stat(filepath.Join(dir, "unwatched.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewManagerUnknownType(t *testing.T) {
	cfg := &config.Config{
		Exporters: []config.ExporterConfig{
			{Type: "surge", Watches: []domain.SourceName{"main"}},
		},
	}

	_, err := NewManager(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unknown exporter type")
}

func TestManagerLogsExportFailures(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	manager := &Manager{
		exporters: map[domain.SourceName][]domain.Exporter{
			"main": {failingExporter{}},
		},
		logger: zap.New(core),
	}

	manager.Export("main", nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "failed to export proxies", entry.Message)
	assert.Equal(t, "main", entry.ContextMap()["source"])
}
