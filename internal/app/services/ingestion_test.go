package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fr0stylo/msgsink/internal/app/domain"
	"github.com/fr0stylo/msgsink/internal/app/ports"
	portmocks "github.com/fr0stylo/msgsink/internal/app/ports/mocks"
)

const testSecret = "testsecret"

var validBody = []byte(`{"message_id":"m1","from":"+919876543210","to":"+14155550100","ts":"2025-01-15T10:00:00Z","text":"Hello"}`)

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes map[ports.IngestResult]int
	stored   int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{outcomes: make(map[ports.IngestResult]int)}
}

func (m *recordingMetrics) RecordOutcome(_ context.Context, result ports.IngestResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[result]++
}

func (m *recordingMetrics) RecordStored(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored++
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signedCommand(body []byte) IngestCommand {
	return IngestCommand{
		SignatureHeader: Sign([]byte(testSecret), body),
		Headers:         http.Header{"Content-Type": []string{"application/json"}},
		Body:            body,
	}
}

func TestIngestStoresValidMessage(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockMessageStore(t)
	metrics := newRecordingMetrics()
	svc := NewMessageIngestService(testSecret, store, metrics, discardLogger())

	text := "Hello"
	store.EXPECT().InsertMessage(mock.Anything, domain.Message{
		MessageID: "m1",
		From:      "+919876543210",
		To:        "+14155550100",
		Timestamp: "2025-01-15T10:00:00Z",
		Text:      &text,
	}).Return(ports.InsertCreated, nil)

	result, err := svc.Ingest(context.Background(), signedCommand(validBody))
	require.NoError(t, err)
	assert.Equal(t, IngestResult{MessageID: "m1", Created: true}, result)
	assert.Equal(t, 1, metrics.outcomes[ports.IngestResultOK])
	assert.Equal(t, 1, metrics.stored)
}

func TestIngestDuplicateIsSuccessWithoutStoredCount(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockMessageStore(t)
	metrics := newRecordingMetrics()
	svc := NewMessageIngestService(testSecret, store, metrics, discardLogger())

	store.EXPECT().InsertMessage(mock.Anything, mock.Anything).Return(ports.InsertCreated, nil).Once()
	store.EXPECT().InsertMessage(mock.Anything, mock.Anything).Return(ports.InsertDuplicate, nil).Once()

	first, err := svc.Ingest(context.Background(), signedCommand(validBody))
	require.NoError(t, err)
	second, err := svc.Ingest(context.Background(), signedCommand(validBody))
	require.NoError(t, err)

	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, 2, metrics.outcomes[ports.IngestResultOK])
	assert.Equal(t, 1, metrics.stored)
}

func TestIngestRejectsWithoutSecret(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockMessageStore(t)
	metrics := newRecordingMetrics()
	svc := NewMessageIngestService("", store, metrics, discardLogger())

	cmd := signedCommand(validBody)
	cmd.SignatureHeader = Sign(nil, validBody)

	_, err := svc.Ingest(context.Background(), cmd)
	require.ErrorIs(t, err, ErrSecretNotConfigured)
	assert.Equal(t, IngestErrorNotConfigured, ClassifyIngestError(err))
	assert.Empty(t, metrics.outcomes, "misconfiguration is not an ingestion outcome")
}

func TestIngestRejectsBadSignatureBeforeParsing(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockMessageStore(t)
	metrics := newRecordingMetrics()
	svc := NewMessageIngestService(testSecret, store, metrics, discardLogger())

	for _, signature := range []string{"", "deadbeef", Sign([]byte("other"), validBody)} {
		_, err := svc.Ingest(context.Background(), IngestCommand{SignatureHeader: signature, Body: validBody})
		require.ErrorIs(t, err, ErrInvalidSignature)
	}

	_, err := svc.Ingest(context.Background(), IngestCommand{SignatureHeader: "123", Body: []byte(`not json`)})
	require.ErrorIs(t, err, ErrInvalidSignature, "signature is checked before the body is parsed")
	assert.Equal(t, 4, metrics.outcomes[ports.IngestResultInvalidSignature])
}

func TestIngestClassifiesMalformedAndInvalidBodies(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockMessageStore(t)
	metrics := newRecordingMetrics()
	svc := NewMessageIngestService(testSecret, store, metrics, discardLogger())

	_, err := svc.Ingest(context.Background(), signedCommand([]byte(`{"message_id":`)))
	require.ErrorIs(t, err, ErrInvalidJSON)

	_, err = svc.Ingest(context.Background(), signedCommand([]byte(`{"message_id":"m1","from":"bad","to":"+222","ts":"2025-01-15T10:00:00Z"}`)))
	require.ErrorIs(t, err, ErrInvalidPayload)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "from", validationErr.Violations[0].Field)

	assert.Equal(t, 1, metrics.outcomes[ports.IngestResultInvalidJSON])
	assert.Equal(t, 1, metrics.outcomes[ports.IngestResultInvalidPayload])
	store.AssertNotCalled(t, "InsertMessage", mock.Anything, mock.Anything)
}

func TestIngestWrapsStoreFailure(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockMessageStore(t)
	svc := NewMessageIngestService(testSecret, store, nil, discardLogger())

	store.EXPECT().InsertMessage(mock.Anything, mock.Anything).Return(ports.InsertOutcome(0), errors.New("database is locked"))

	_, err := svc.Ingest(context.Background(), signedCommand(validBody))
	require.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, IngestErrorStorage, ClassifyIngestError(err))
}

func TestIngestUnwrapsStructuredCloudEvent(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockMessageStore(t)
	svc := NewMessageIngestService(testSecret, store, nil, discardLogger())

	body := []byte(`{"specversion":"1.0","id":"evt-1","source":"sms-gateway","type":"message.received","datacontenttype":"application/json","data":{"message_id":"ce-1","from":"+111","to":"+222","ts":"2025-01-15T10:00:00Z"}}`)
	store.EXPECT().InsertMessage(mock.Anything, mock.MatchedBy(func(msg domain.Message) bool {
		return msg.MessageID == "ce-1" && msg.Text == nil
	})).Return(ports.InsertCreated, nil)

	result, err := svc.Ingest(context.Background(), IngestCommand{
		SignatureHeader: Sign([]byte(testSecret), body),
		Headers:         http.Header{"Content-Type": []string{"application/cloudevents+json; charset=utf-8"}},
		Body:            body,
	})
	require.NoError(t, err)
	assert.Equal(t, "ce-1", result.MessageID)
}

func TestIngestUnwrapsBinaryCloudEvent(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockMessageStore(t)
	svc := NewMessageIngestService(testSecret, store, nil, discardLogger())

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Ce-Specversion", "1.0")
	headers.Set("Ce-Id", "evt-2")
	headers.Set("Ce-Source", "sms-gateway")
	headers.Set("Ce-Type", "message.received")

	store.EXPECT().InsertMessage(mock.Anything, mock.MatchedBy(func(msg domain.Message) bool {
		return msg.MessageID == "m1"
	})).Return(ports.InsertDuplicate, nil)

	result, err := svc.Ingest(context.Background(), IngestCommand{
		SignatureHeader: Sign([]byte(testSecret), validBody),
		Headers:         headers,
		Body:            validBody,
	})
	require.NoError(t, err)
	assert.False(t, result.Created)
}

func TestIngestRejectsBrokenCloudEventEnvelope(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockMessageStore(t)
	svc := NewMessageIngestService(testSecret, store, nil, discardLogger())

	body := []byte(`{"specversion":"1.0","id":"evt-3","source":"sms-gateway","type":"message.received"}`)
	_, err := svc.Ingest(context.Background(), IngestCommand{
		SignatureHeader: Sign([]byte(testSecret), body),
		Headers:         http.Header{"Content-Type": []string{"application/cloudevents+json"}},
		Body:            body,
	})
	require.ErrorIs(t, err, ErrInvalidJSON)
}
