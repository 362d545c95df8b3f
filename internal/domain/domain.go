package domain

import (
	"time"
)

// Conversion is the outcome of parsing one RawLink.
type Conversion struct {
	Source SourceName
	Region string
	Seq    int
	Link   RawLink
	Proxy  Proxy
	Error  error
}

func (c Conversion) OK() bool {
	return c.Error == nil && c.Proxy != nil
}

type ConversionResult struct {
	Conversion Conversion
	Duration   time.Duration
	Completed  time.Time
}

// RunSummary describes one pass over a source.
type RunSummary struct {
	RunID     string
	Source    SourceName
	Extracted int
	Converted int
	Failed    int
	Duration  time.Duration
}
