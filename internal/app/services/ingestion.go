package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	cebinding "github.com/cloudevents/sdk-go/v2/binding"
	ceevent "github.com/cloudevents/sdk-go/v2/event"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"

	"github.com/fr0stylo/msgsink/internal/app/ports"
	"github.com/fr0stylo/msgsink/internal/observability"
)

// IngestCommand is transport-agnostic webhook ingestion input.
type IngestCommand struct {
	SignatureHeader string
	Headers         http.Header
	Body            []byte
}

// IngestResult describes an accepted delivery.
type IngestResult struct {
	MessageID string
	Created   bool
}

// MessageIngestService authenticates, validates and stores webhook messages.
type MessageIngestService struct {
	secret  []byte
	store   ports.MessageStore
	metrics ports.IngestionMetrics
	log     *slog.Logger
}

// NewMessageIngestService constructs an ingestion service. An empty secret is
// allowed; every Ingest call then fails with ErrSecretNotConfigured.
func NewMessageIngestService(secret string, store ports.MessageStore, metrics ports.IngestionMetrics, log *slog.Logger) *MessageIngestService {
	if metrics == nil {
		metrics = ports.NopIngestionMetrics{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &MessageIngestService{
		secret:  []byte(secret),
		store:   store,
		metrics: metrics,
		log:     log,
	}
}

// Ingest verifies the signature over the raw body, validates the message and
// inserts it idempotently. Created and duplicate deliveries both succeed.
func (s *MessageIngestService) Ingest(ctx context.Context, cmd IngestCommand) (IngestResult, error) {
	if len(s.secret) == 0 {
		s.log.ErrorContext(ctx, "webhook_rejected", "result", "not_configured", "error", ErrSecretNotConfigured)
		return IngestResult{}, ErrSecretNotConfigured
	}

	if !VerifySignature(s.secret, cmd.Body, cmd.SignatureHeader) {
		s.reject(ctx, ports.IngestResultInvalidSignature, ErrInvalidSignature)
		return IngestResult{}, ErrInvalidSignature
	}

	payload, err := extractPayload(ctx, cmd.Headers, cmd.Body)
	if err != nil {
		s.reject(ctx, ports.IngestResultInvalidJSON, err)
		return IngestResult{}, err
	}

	msg, err := ValidatePayload(payload)
	if err != nil {
		result := ports.IngestResultInvalidPayload
		if errors.Is(err, ErrInvalidJSON) {
			result = ports.IngestResultInvalidJSON
		}
		s.reject(ctx, result, err)
		return IngestResult{}, err
	}

	ctx = observability.WithMessageID(ctx, msg.MessageID)
	outcome, err := s.store.InsertMessage(ctx, msg)
	if err != nil {
		s.log.ErrorContext(ctx, "webhook_store_failed", "message_id", msg.MessageID, "error", err)
		return IngestResult{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	created := outcome == ports.InsertCreated
	s.metrics.RecordOutcome(ctx, ports.IngestResultOK)
	if created {
		s.metrics.RecordStored(ctx)
	}
	s.log.InfoContext(ctx, "webhook_processed",
		"message_id", msg.MessageID,
		"dup", !created,
		"result", string(ports.IngestResultOK),
	)

	return IngestResult{MessageID: msg.MessageID, Created: created}, nil
}

func (s *MessageIngestService) reject(ctx context.Context, result ports.IngestResult, err error) {
	s.metrics.RecordOutcome(ctx, result)
	s.log.WarnContext(ctx, "webhook_rejected", "result", string(result), "error", err)
}

// extractPayload returns the message JSON, unwrapping a CloudEvents envelope
// when the request is one. Plain JSON bodies are returned unchanged.
func extractPayload(ctx context.Context, headers http.Header, body []byte) ([]byte, error) {
	if !isCloudEvent(headers) {
		return body, nil
	}

	req := &http.Request{
		Method: http.MethodPost,
		Header: headers.Clone(),
		Body:   io.NopCloser(bytes.NewReader(body)),
	}
	message := cehttp.NewMessageFromHttpRequest(req)
	defer func() {
		_ = message.Finish(nil)
	}()

	event, err := cebinding.ToEvent(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	raw, err := cloudEventData(event)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return raw, nil
}

func isCloudEvent(headers http.Header) bool {
	if headers == nil {
		return false
	}
	if strings.TrimSpace(headers.Get("Ce-Specversion")) != "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(headers.Get("Content-Type"))
	return err == nil && mediaType == "application/cloudevents+json"
}

func cloudEventData(event *ceevent.Event) ([]byte, error) {
	if event == nil {
		return nil, errors.New("cloud event is nil")
	}
	raw := json.RawMessage{}
	if err := event.DataAs(&raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("cloud event data is empty")
	}
	return raw, nil
}

