package webhookclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	path      string
	signature string
	headers   http.Header
	body      []byte
}

func newCapturingServer(t *testing.T, status int) (*httptest.Server, *captured) {
	t.Helper()

	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.signature = r.Header.Get("X-Signature")
		got.headers = r.Header.Clone()
		got.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"detail":"nope"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestSignMatchesKnownVector(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"ab6bbcfdf78c9651f2b948d32fdd2147d9471adc72482f5a7e1d07b508ea205c",
		Sign("testsecret", []byte(`{"message_id":"m1"}`)),
	)
}

func TestBuildBodyFillsDefaults(t *testing.T) {
	t.Parallel()

	body, msg, err := BuildBody(Message{From: " +111 ", To: "+222"})
	require.NoError(t, err)
	assert.Len(t, msg.MessageID, 36)
	assert.True(t, strings.HasSuffix(msg.Timestamp, "Z"), msg.Timestamp)
	assert.Equal(t, "+111", msg.From)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, msg.MessageID, decoded["message_id"])
	assert.NotContains(t, decoded, "text")

	_, _, err = BuildBody(Message{From: "+111"})
	assert.Error(t, err)
}

func TestPublishSignsPlainBody(t *testing.T) {
	t.Parallel()

	srv, got := newCapturingServer(t, http.StatusOK)
	text := "Hello"
	client := Client{Endpoint: srv.URL + "/", Secret: "testsecret"}

	id, err := client.Publish(context.Background(), Message{MessageID: "m1", From: "+111", To: "+222", Timestamp: "2025-01-15T10:00:00Z", Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "m1", id)
	assert.Equal(t, "/webhook", got.path)
	assert.Equal(t, "application/json", got.headers.Get("Content-Type"))
	assert.JSONEq(t, `{"message_id":"m1","from":"+111","to":"+222","ts":"2025-01-15T10:00:00Z","text":"Hello"}`, string(got.body))
	assert.Equal(t, Sign("testsecret", got.body), got.signature)
}

func TestPublishBinaryCloudEventSignsData(t *testing.T) {
	t.Parallel()

	srv, got := newCapturingServer(t, http.StatusOK)
	client := Client{Endpoint: srv.URL, Secret: "testsecret", Envelope: EnvelopeCloudEventBinary, Source: "test"}

	_, err := client.Publish(context.Background(), Message{MessageID: "m2", From: "+111", To: "+222", Timestamp: "2025-01-15T10:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, "1.0", got.headers.Get("Ce-Specversion"))
	assert.Equal(t, "m2", got.headers.Get("Ce-Id"))
	assert.Equal(t, "test", got.headers.Get("Ce-Source"))
	assert.JSONEq(t, `{"message_id":"m2","from":"+111","to":"+222","ts":"2025-01-15T10:00:00Z"}`, string(got.body))
	assert.Equal(t, Sign("testsecret", got.body), got.signature)
}

func TestPublishStructuredCloudEventSignsEnvelope(t *testing.T) {
	t.Parallel()

	srv, got := newCapturingServer(t, http.StatusOK)
	client := Client{Endpoint: srv.URL, Secret: "testsecret", Envelope: EnvelopeCloudEventStructured}

	_, err := client.Publish(context.Background(), Message{MessageID: "m3", From: "+111", To: "+222", Timestamp: "2025-01-15T10:00:00Z"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.headers.Get("Content-Type"), "application/cloudevents+json"))

	var envelope struct {
		ID     string          `json:"id"`
		Source string          `json:"source"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(got.body, &envelope))
	assert.Equal(t, "m3", envelope.ID)
	assert.Equal(t, defaultSource, envelope.Source)
	assert.JSONEq(t, `{"message_id":"m3","from":"+111","to":"+222","ts":"2025-01-15T10:00:00Z"}`, string(envelope.Data))
	assert.Equal(t, Sign("testsecret", got.body), got.signature)
}

func TestPublishReturnsRejection(t *testing.T) {
	t.Parallel()

	srv, _ := newCapturingServer(t, http.StatusUnauthorized)
	client := Client{Endpoint: srv.URL, Secret: "wrong"}

	_, err := client.Publish(context.Background(), Message{From: "+111", To: "+222"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
	assert.Contains(t, err.Error(), `{"detail":"nope"}`)
}

func TestPublishRequiresEndpointAndSecret(t *testing.T) {
	t.Parallel()

	_, err := Client{Secret: "s"}.Publish(context.Background(), Message{From: "+111", To: "+222"})
	assert.Error(t, err)
	_, err = Client{Endpoint: "http://localhost"}.Publish(context.Background(), Message{From: "+111", To: "+222"})
	assert.Error(t, err)
}
