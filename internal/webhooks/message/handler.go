package message

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	appservices "github.com/fr0stylo/msgsink/internal/app/services"
)

const (
	// SignatureHeader carries the hex HMAC-SHA256 of the raw body.
	SignatureHeader = "X-Signature"
	maxPayloadBytes = 1 << 20
)

// Ingester is the ingestion operation the handler drives.
type Ingester interface {
	Ingest(ctx context.Context, cmd appservices.IngestCommand) (appservices.IngestResult, error)
}

// Handler accepts signed message webhooks.
type Handler struct {
	ingest Ingester
}

// NewHandler constructs a message webhook handler.
func NewHandler(ingest Ingester) *Handler {
	return &Handler{ingest: ingest}
}

// Handle reads the raw body, runs ingestion and maps the outcome to a status.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) error {
	body, readErr := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if readErr != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(readErr, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge, "payload too large")
			return nil
		}
		writeDetail(w, http.StatusBadRequest, "invalid payload")
		return readErr
	}

	_, ingestErr := h.ingest.Ingest(r.Context(), appservices.IngestCommand{
		SignatureHeader: r.Header.Get(SignatureHeader),
		Headers:         r.Header,
		Body:            body,
	})
	if handled := writeIngestHTTPError(w, ingestErr); handled {
		return nil
	}
	if ingestErr != nil {
		return ingestErr
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}

type errorBody struct {
	Detail string                       `json:"detail"`
	Errors []appservices.FieldViolation `json:"errors,omitempty"`
}

func writeIngestHTTPError(w http.ResponseWriter, err error) bool {
	switch appservices.ClassifyIngestError(err) {
	case appservices.IngestErrorUnknown:
		return false
	case appservices.IngestErrorNotConfigured:
		writeDetail(w, http.StatusServiceUnavailable, "WEBHOOK_SECRET is not configured")
		return true
	case appservices.IngestErrorInvalidSignature:
		writeDetail(w, http.StatusUnauthorized, "Invalid signature")
		return true
	case appservices.IngestErrorInvalidJSON:
		writeDetail(w, http.StatusBadRequest, "Invalid JSON payload")
		return true
	case appservices.IngestErrorInvalidPayload:
		body := errorBody{Detail: "Invalid payload schema"}
		var validationErr *appservices.ValidationError
		if errors.As(err, &validationErr) {
			body.Errors = validationErr.Violations
		}
		writeJSON(w, http.StatusUnprocessableEntity, body)
		return true
	case appservices.IngestErrorStorage:
		writeDetail(w, http.StatusServiceUnavailable, "storage unavailable")
		return true
	}

	return false
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
