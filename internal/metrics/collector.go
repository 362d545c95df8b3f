package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"proxy-normalizer/internal/domain"
)

// Module provides the metrics collector
var Module = fx.Options(
	fx.Provide(NewCollector),
	fx.Provide(func(c *Collector) domain.MetricsCollector { return c }),
	fx.Invoke(registerServer),
)

type Collector struct {
	logger          *zap.Logger
	linksExtracted  *prometheus.CounterVec
	parsesTotal     *prometheus.CounterVec
	parseDuration   *prometheus.HistogramVec
	workerStarts    *prometheus.CounterVec
	workerStops     *prometheus.CounterVec
	activeWorkers   prometheus.Gauge
	runsTotal       *prometheus.CounterVec
	lastRunProxies  *prometheus.GaugeVec
	lastRunFailures *prometheus.GaugeVec
}

func NewCollector(logger *zap.Logger, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		logger: logger,
		linksExtracted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "normalizer_links_extracted_total",
				Help: "Total number of candidate links extracted from subscriptions",
			},
			[]string{"source", "protocol"},
		),
		parsesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "normalizer_parses_total",
				Help: "Total number of link conversions performed",
			},
			[]string{"protocol", "status"},
		),
		parseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "normalizer_parse_duration_seconds",
				Help:    "Duration of single link conversions",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
			},
			[]string{"protocol"},
		),
		workerStarts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "normalizer_worker_starts_total",
				Help: "Total number of worker starts",
			},
			[]string{"worker_id"},
		),
		workerStops: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "normalizer_worker_stops_total",
				Help: "Total number of worker stops",
			},
			[]string{"worker_id"},
		),
		activeWorkers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "normalizer_active_workers",
				Help: "Number of currently active workers",
			},
		),
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "normalizer_runs_total",
				Help: "Total number of conversion runs per source",
			},
			[]string{"source"},
		),
		lastRunProxies: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "normalizer_last_run_proxies",
				Help: "Number of records converted by the latest run",
			},
			[]string{"source"},
		),
		lastRunFailures: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "normalizer_last_run_failures",
				Help: "Number of links that failed to convert in the latest run",
			},
			[]string{"source"},
		),
	}
}

func (c *Collector) RecordExtracted(source domain.SourceName, protocol domain.ProtocolTag) {
	c.linksExtracted.WithLabelValues(string(source), string(protocol)).Inc()
}

func (c *Collector) RecordParse(result domain.ConversionResult) {
	protocol := string(result.Conversion.Link.Protocol)
	status := "success"
	if !result.Conversion.OK() {
		status = "failure"
	}
	c.parsesTotal.WithLabelValues(protocol, status).Inc()
	c.parseDuration.WithLabelValues(protocol).Observe(result.Duration.Seconds())
}

func (c *Collector) RecordWorkerStart(workerID string) {
	c.workerStarts.WithLabelValues(workerID).Inc()
	c.activeWorkers.Inc()
}

func (c *Collector) RecordWorkerStop(workerID string) {
	c.workerStops.WithLabelValues(workerID).Inc()
	c.activeWorkers.Dec()
}

func (c *Collector) RecordRun(summary domain.RunSummary) {
	source := string(summary.Source)
	c.runsTotal.WithLabelValues(source).Inc()
	c.lastRunProxies.WithLabelValues(source).Set(float64(summary.Converted))
	c.lastRunFailures.WithLabelValues(source).Set(float64(summary.Failed))
}
