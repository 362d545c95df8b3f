package worker

import (
	"context"
	"errors"
	"iter"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"proxy-normalizer/internal/config"
	"proxy-normalizer/internal/domain"
	"proxy-normalizer/internal/link"
)

type recordingMetrics struct {
	mu        sync.Mutex
	extracted int
	parses    []domain.ConversionResult
	starts    int
	stops     int
	runs      []domain.RunSummary
}

func (m *recordingMetrics) RecordExtracted(domain.SourceName, domain.ProtocolTag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extracted++
}

func (m *recordingMetrics) RecordParse(r domain.ConversionResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parses = append(m.parses, r)
}

func (m *recordingMetrics) RecordWorkerStart(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts++
}

func (m *recordingMetrics) RecordWorkerStop(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
}

func (m *recordingMetrics) RecordRun(s domain.RunSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, s)
}

type parserFunc func(text, baseName, region string) (domain.Proxy, error)

func (f parserFunc) Parse(text, baseName, region string) (domain.Proxy, error) {
	return f(text, baseName, region)
}

func jobsOf(texts ...string) iter.Seq[domain.Conversion] {
	return func(yield func(domain.Conversion) bool) {
		for i, text := range texts {
			job := domain.Conversion{
				Source: "main",
				Region: "JP",
				Seq:    i,
				Link:   domain.RawLink{DisplayName: "node-" + strconv.Itoa(i), Text: text},
			}
			if !yield(job) {
				return
			}
		}
	}
}

func newTestPool(count int, parser parserFunc, metrics domain.MetricsCollector) *Pool {
	cfg := &config.Config{Workers: config.Workers{Count: count}}
	return NewPool(cfg, parser, metrics, zap.NewNop())
}

func TestPoolConvert(t *testing.T) {
	metrics := &recordingMetrics{}
	pool := newTestPool(4, link.Parse, metrics)

	conversions := pool.Convert(context.Background(), jobsOf(
		"hy2://secret@1.2.3.4:443?sni=example.com",
		"trojan://password@example.com:443",
		"vless://uuid@example.com:8443?type=ws",
		"vmess://not-json",
		"ss://YWVzLTI1Ni1nY206cHdkQGhvc3Q6ODM4OA",
	))

	require.Len(t, conversions, 5)
	for i, c := range conversions {
		assert.Equal(t, i, c.Seq)
	}

	assert.True(t, conversions[0].OK())
	assert.Equal(t, "JP node-0", conversions[0].Proxy.Name())
	assert.ErrorIs(t, conversions[1].Error, link.ErrUnsupportedScheme)
	assert.True(t, conversions[2].OK())
	assert.ErrorIs(t, conversions[3].Error, link.ErrInvalidPayload)
	assert.True(t, conversions[4].OK())
	assert.Equal(t, "host", conversions[4].Proxy.Server())

	assert.Len(t, metrics.parses, 5)
	assert.Equal(t, 4, metrics.starts)
	assert.Equal(t, 4, metrics.stops)
}

func TestPoolConvertEmpty(t *testing.T) {
	pool := newTestPool(2, link.Parse, &recordingMetrics{})

	assert.Empty(t, pool.Convert(context.Background(), jobsOf()))
}

func TestPoolRestartsPanickingWorker(t *testing.T) {
	var calls atomic.Int32
	parser := parserFunc(func(text, baseName, region string) (domain.Proxy, error) {
		if calls.Add(1) == 1 {
			panic("boom")
		}
		return domain.Proxy{"name": baseName}, nil
	})

	pool := newTestPool(1, parser, &recordingMetrics{})
	conversions := pool.Convert(context.Background(), jobsOf("a", "b", "c"))

	// the job being processed during the panic is lost, the rest complete
	require.Len(t, conversions, 2)
	assert.Equal(t, "node-1", conversions[0].Proxy.Name())
	assert.Equal(t, "node-2", conversions[1].Proxy.Name())
}

func TestPoolConvertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	parser := parserFunc(func(string, string, string) (domain.Proxy, error) {
		return nil, errors.New("unreachable")
	})
	pool := newTestPool(2, parser, &recordingMetrics{})

	conversions := pool.Convert(ctx, jobsOf("a", "b", "c", "d", "e", "f"))
	assert.LessOrEqual(t, len(conversions), 6)
}
