package worker

import (
	"cmp"
	"context"
	"iter"
	"slices"
	"sync"

	"go.uber.org/zap"
	"proxy-normalizer/internal/config"
	"proxy-normalizer/internal/domain"
	"proxy-normalizer/internal/interfaces"
)

type Pool struct {
	workerCount int
	parser      interfaces.LinkParser
	metrics     domain.MetricsCollector
	logger      *zap.Logger
}

func NewPool(
	cfg *config.Config,
	parser interfaces.LinkParser,
	metrics domain.MetricsCollector,
	logger *zap.Logger,
) *Pool {
	return &Pool{
		workerCount: max(cfg.Workers.Count, 1),
		parser:      parser,
		metrics:     metrics,
		logger:      logger.With(zap.String("component", "pool")),
	}
}

// Convert parses every job on the pool's workers and returns the
// conversions ordered by Seq. Links are independent, so a failed or
// panicking conversion never affects the others. When ctx is cancelled the
// remaining jobs are dropped.
func (p *Pool) Convert(ctx context.Context, jobs iter.Seq[domain.Conversion]) []domain.Conversion {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobCh := make(chan domain.Conversion, p.workerCount*2)
	resultCh := make(chan domain.ConversionResult, p.workerCount*2)

	var wg sync.WaitGroup
	for i := 0; i < p.workerCount; i++ {
		w := NewWorker(i, jobCh, resultCh, p.parser, p.metrics, p.logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p.runWorker(ctx, w) {
				p.logger.Info("worker restarted after panic", zap.Int("worker_id", i))
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for job := range jobs {
			select {
			case jobCh <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var conversions []domain.Conversion
	for result := range resultCh {
		p.metrics.RecordParse(result)
		conversions = append(conversions, result.Conversion)
	}

	slices.SortFunc(conversions, func(a, b domain.Conversion) int {
		return cmp.Compare(a.Seq, b.Seq)
	})

	p.logger.Debug("conversion finished",
		zap.Int("worker_count", p.workerCount),
		zap.Int("conversions", len(conversions)))

	return conversions
}

// runWorker reports whether the worker panicked and should be restarted.
func (p *Pool) runWorker(ctx context.Context, w Worker) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker panic recovered",
				zap.Any("panic", r),
				zap.Stack("stack"))
			panicked = ctx.Err() == nil
		}
	}()

	w.Start(ctx)
	return false
}
