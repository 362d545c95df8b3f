package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"proxy-normalizer/internal/domain"
	"proxy-normalizer/internal/interfaces"
	"proxy-normalizer/internal/subscription"
)

type defaultScheduler struct {
	interval time.Duration
	sources  []domain.Source
	pool     interfaces.WorkerPool
	sink     interfaces.ResultSink
	logger   *zap.Logger
	metrics  domain.MetricsCollector
	readFile func(string) ([]byte, error)
	mu       sync.RWMutex
	stopping bool
}

// NewScheduler converts every source once and then, when interval is
// positive, again on each tick.
func NewScheduler(
	interval time.Duration,
	sources []domain.Source,
	pool interfaces.WorkerPool,
	sink interfaces.ResultSink,
	metrics domain.MetricsCollector,
	logger *zap.Logger,
) interfaces.Scheduler {
	return &defaultScheduler{
		interval: interval,
		sources:  sources,
		pool:     pool,
		sink:     sink,
		logger:   logger.With(zap.String("component", "scheduler")),
		metrics:  metrics,
		readFile: os.ReadFile,
	}
}

// Start blocks until the runs are done: after the first run when there is no
// interval, otherwise until ctx is cancelled or Stop is called.
func (s *defaultScheduler) Start(ctx context.Context) error {
	err := s.runAll(ctx)
	if s.interval <= 0 {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !s.IsHealthy() {
				return nil
			}
			if err := s.runAll(ctx); err != nil {
				s.logger.Error("conversion run failed", zap.Error(err))
			}
		case <-ctx.Done():
			s.logger.Debug("scheduler stopped", zap.Error(ctx.Err()))
			return ctx.Err()
		}
	}
}

func (s *defaultScheduler) runAll(ctx context.Context) error {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))

	var errs []error
	for _, src := range s.sources {
		summary, err := s.runSource(ctx, runID, src)
		if err != nil {
			logger.Error("failed to convert source",
				zap.String("source", string(src.Name)),
				zap.Error(err))
			errs = append(errs, err)
			continue
		}

		logger.Info("converted source",
			zap.String("source", string(summary.Source)),
			zap.Int("extracted", summary.Extracted),
			zap.Int("converted", summary.Converted),
			zap.Int("failed", summary.Failed),
			zap.Duration("duration", summary.Duration))
	}

	return errors.Join(errs...)
}

func (s *defaultScheduler) runSource(ctx context.Context, runID string, src domain.Source) (domain.RunSummary, error) {
	start := time.Now()
	summary := domain.RunSummary{RunID: runID, Source: src.Name}

	data, err := s.readFile(src.Path)
	if err != nil {
		return summary, NewRunError("read", fmt.Sprintf("failed to read source %s", src.Name), err)
	}

	jobs := func(yield func(domain.Conversion) bool) {
		seq := 0
		for raw := range subscription.Extract(string(data)) {
			s.metrics.RecordExtracted(src.Name, raw.Protocol)
			job := domain.Conversion{
				Source: src.Name,
				Region: src.Region,
				Seq:    seq,
				Link:   raw,
			}
			seq++
			if !yield(job) {
				return
			}
		}
	}

	conversions := s.pool.Convert(ctx, jobs)
	if err := ctx.Err(); err != nil {
		return summary, NewRunError("convert", fmt.Sprintf("conversion of %s cancelled", src.Name), err)
	}

	proxies := lo.FilterMap(conversions, func(c domain.Conversion, _ int) (domain.Proxy, bool) {
		return c.Proxy, c.OK()
	})

	summary.Extracted = len(conversions)
	summary.Converted = len(proxies)
	summary.Failed = lo.CountBy(conversions, func(c domain.Conversion) bool { return !c.OK() })
	summary.Duration = time.Since(start)

	s.sink.Export(src.Name, proxies)
	s.metrics.RecordRun(summary)

	return summary, nil
}

func (s *defaultScheduler) Stop() error {
	s.mu.Lock()
	s.stopping = true
	s.mu.Unlock()
	return nil
}

func (s *defaultScheduler) IsHealthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.stopping
}
