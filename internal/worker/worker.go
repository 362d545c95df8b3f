package worker

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
	"proxy-normalizer/internal/domain"
	"proxy-normalizer/internal/interfaces"
)

// Worker represents a single worker that converts links until its jobs
// channel is closed or ctx is cancelled
type Worker interface {
	Start(context.Context)
}

type worker struct {
	id      int
	jobs    <-chan domain.Conversion
	results chan<- domain.ConversionResult
	parser  interfaces.LinkParser
	logger  *zap.Logger
	metrics domain.MetricsCollector
}

func NewWorker(
	id int,
	jobs <-chan domain.Conversion,
	results chan<- domain.ConversionResult,
	parser interfaces.LinkParser,
	metrics domain.MetricsCollector,
	logger *zap.Logger,
) Worker {
	return &worker{
		id:      id,
		jobs:    jobs,
		results: results,
		parser:  parser,
		logger:  logger.With(zap.Int("worker_id", id)),
		metrics: metrics,
	}
}

func (w *worker) Start(ctx context.Context) {
	workerID := strconv.Itoa(w.id)
	w.metrics.RecordWorkerStart(workerID)
	defer w.metrics.RecordWorkerStop(workerID)

	w.logger.Debug("worker started")
	defer w.logger.Debug("worker stopped")

	for {
		select {
		case job, ok := <-w.jobs:
			if !ok {
				return
			}
			result := w.process(job)
			select {
			case w.results <- result:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			w.logger.Debug("context cancelled",
				zap.Error(ctx.Err()))
			return
		}
	}
}

func (w *worker) process(job domain.Conversion) domain.ConversionResult {
	start := time.Now()

	job.Proxy, job.Error = w.parser.Parse(job.Link.Text, job.Link.DisplayName, job.Region)

	return domain.ConversionResult{
		Conversion: job,
		Duration:   time.Since(start),
		Completed:  time.Now(),
	}
}
