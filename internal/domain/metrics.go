package domain

type MetricsCollector interface {
	RecordExtracted(source SourceName, protocol ProtocolTag)
	RecordParse(result ConversionResult)
	RecordWorkerStart(workerID string)
	RecordWorkerStop(workerID string)
	RecordRun(summary RunSummary)
}
