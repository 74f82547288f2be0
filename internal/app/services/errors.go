package services

import "errors"

var (
	// ErrSecretNotConfigured indicates WEBHOOK_SECRET is unset; ingestion cannot authenticate.
	ErrSecretNotConfigured = errors.New("webhook secret is not configured")
	// ErrInvalidSignature indicates a missing or mismatching X-Signature.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrInvalidJSON indicates the request body is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON payload")
	// ErrInvalidPayload indicates JSON that violates message field rules.
	ErrInvalidPayload = errors.New("invalid payload schema")
	// ErrStorageUnavailable indicates the message store could not serve the request.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrInvalidQuery indicates listing parameters outside their allowed range.
	ErrInvalidQuery = errors.New("invalid query")
)

// IngestErrorKind classifies ingestion failures for transport-specific mapping.
type IngestErrorKind string

const (
	// IngestErrorUnknown is used when error is nil or not classified.
	IngestErrorUnknown IngestErrorKind = "unknown"
	// IngestErrorNotConfigured indicates the service has no webhook secret.
	IngestErrorNotConfigured IngestErrorKind = "not_configured"
	// IngestErrorInvalidSignature indicates signature mismatch.
	IngestErrorInvalidSignature IngestErrorKind = "invalid_signature"
	// IngestErrorInvalidJSON indicates an unparsable body.
	IngestErrorInvalidJSON IngestErrorKind = "invalid_json"
	// IngestErrorInvalidPayload indicates field rule violations.
	IngestErrorInvalidPayload IngestErrorKind = "invalid_payload"
	// IngestErrorStorage indicates the store failed.
	IngestErrorStorage IngestErrorKind = "storage_unavailable"
)

// ClassifyIngestError classifies a returned ingestion error.
func ClassifyIngestError(err error) IngestErrorKind {
	switch {
	case err == nil:
		return IngestErrorUnknown
	case errors.Is(err, ErrSecretNotConfigured):
		return IngestErrorNotConfigured
	case errors.Is(err, ErrInvalidSignature):
		return IngestErrorInvalidSignature
	case errors.Is(err, ErrInvalidJSON):
		return IngestErrorInvalidJSON
	case errors.Is(err, ErrInvalidPayload):
		return IngestErrorInvalidPayload
	case errors.Is(err, ErrStorageUnavailable):
		return IngestErrorStorage
	default:
		return IngestErrorUnknown
	}
}
