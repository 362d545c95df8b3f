package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"proxy-normalizer/internal/domain"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(zap.NewNop(), reg)

	c.RecordExtracted("main", domain.ProtocolVLESS)
	c.RecordExtracted("main", domain.ProtocolVLESS)
	c.RecordExtracted("main", domain.ProtocolHysteria2)

	c.RecordParse(domain.ConversionResult{
		Conversion: domain.Conversion{
			Link:  domain.RawLink{Protocol: domain.ProtocolVLESS},
			Proxy: domain.Proxy{"name": "x"},
		},
		Duration: time.Millisecond,
	})
	c.RecordParse(domain.ConversionResult{
		Conversion: domain.Conversion{
			Link:  domain.RawLink{Protocol: domain.ProtocolVLESS},
			Error: errors.New("boom"),
		},
	})

	c.RecordWorkerStart("0")
	c.RecordWorkerStart("1")
	c.RecordWorkerStop("1")

	c.RecordRun(domain.RunSummary{Source: "main", Extracted: 3, Converted: 2, Failed: 1})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.linksExtracted.WithLabelValues("main", "vless")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.linksExtracted.WithLabelValues("main", "hy2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.parsesTotal.WithLabelValues("vless", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.parsesTotal.WithLabelValues("vless", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.activeWorkers))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("main")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.lastRunProxies.WithLabelValues("main")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.lastRunFailures.WithLabelValues("main")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.parseDuration))
}
