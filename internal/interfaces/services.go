package interfaces

import (
	"context"
	"iter"

	"proxy-normalizer/internal/domain"
)

// LinkParser converts a single link into a normalized proxy record
type LinkParser interface {
	Parse(text, baseName, region string) (domain.Proxy, error)
}

// WorkerPool fans conversions of one source out to its workers
type WorkerPool interface {
	Convert(ctx context.Context, jobs iter.Seq[domain.Conversion]) []domain.Conversion
}

// Scheduler defines the interface for conversion run scheduling
type Scheduler interface {
	Start(context.Context) error
	Stop() error
	IsHealthy() bool
}

// ResultSink receives the records converted from a source
type ResultSink interface {
	Export(source domain.SourceName, proxies []domain.Proxy)
}
