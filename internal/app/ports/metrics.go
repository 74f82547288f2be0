package ports

import "context"

// IngestResult is the outcome label of one webhook delivery.
type IngestResult string

const (
	IngestResultOK               IngestResult = "ok"
	IngestResultInvalidSignature IngestResult = "invalid_signature"
	IngestResultInvalidJSON      IngestResult = "invalid_json"
	IngestResultInvalidPayload   IngestResult = "invalid_payload"
)

// IngestResults lists every outcome a delivery can be counted under.
func IngestResults() []IngestResult {
	return []IngestResult{
		IngestResultOK,
		IngestResultInvalidSignature,
		IngestResultInvalidJSON,
		IngestResultInvalidPayload,
	}
}

// IngestionMetrics receives ingestion outcome counts.
type IngestionMetrics interface {
	RecordOutcome(ctx context.Context, result IngestResult)
	RecordStored(ctx context.Context)
}

// NopIngestionMetrics discards all observations.
type NopIngestionMetrics struct{}

func (NopIngestionMetrics) RecordOutcome(context.Context, IngestResult) {}

func (NopIngestionMetrics) RecordStored(context.Context) {}
