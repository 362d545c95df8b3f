package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"proxy-normalizer/internal/domain"
)

func TestJSONFileExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxies.json")

	exporter, err := New(json.RawMessage(`{"type": "json", "watches": ["main"], "path": "` + filepath.ToSlash(path) + `"}`))
	require.NoError(t, err)

	proxies := []domain.Proxy{
		{"name": "🌐 a", "type": "ss", "server": "host", "port": 8388, "cipher": "aes-256-gcm"},
	}
	require.NoError(t, exporter.Export("main", proxies))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "🌐 a", got[0]["name"])
	assert.Equal(t, 8388.0, got[0]["port"])
	assert.Equal(t, "aes-256-gcm", got[0]["cipher"])
}

func TestJSONFileExporterEmptySource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxies.json")
	exporter := NewWithPath(path)

	require.NoError(t, exporter.Export("main", nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}
