package webhookclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	cebinding "github.com/cloudevents/sdk-go/v2/binding"
	ceevent "github.com/cloudevents/sdk-go/v2/event"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"
)

const (
	defaultSource = "msgsink/webhookclient"
	eventType     = "msgsink.message.received"
)

// Publish signs and posts msg to <Endpoint>/webhook and returns the message id sent.
func (c Client) Publish(ctx context.Context, msg Message) (string, error) {
	body, resolved, err := BuildBody(msg)
	if err != nil {
		return "", err
	}
	if err := c.publishBody(ctx, resolved.MessageID, body); err != nil {
		return "", err
	}
	return resolved.MessageID, nil
}

func (c Client) publishBody(ctx context.Context, messageID string, body []byte) error {
	endpoint := strings.TrimSpace(c.Endpoint)
	secret := strings.TrimSpace(c.Secret)
	if endpoint == "" || secret == "" {
		return fmt.Errorf("endpoint/secret are required")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	requestURL := strings.TrimRight(endpoint, "/") + "/webhook"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.Envelope != EnvelopePlain {
		if err := c.wrapCloudEvent(ctx, req, messageID, body); err != nil {
			return err
		}
	}

	signed, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	req.Body = io.NopCloser(bytes.NewReader(signed))
	req.ContentLength = int64(len(signed))
	req.Header.Set("X-Signature", Sign(secret, signed))

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook rejected: status=%s body=%s", resp.Status, strings.TrimSpace(string(payload)))
	}
	return nil
}

func (c Client) wrapCloudEvent(ctx context.Context, req *http.Request, messageID string, body []byte) error {
	source := strings.TrimSpace(c.Source)
	if source == "" {
		source = defaultSource
	}

	event := ceevent.New()
	event.SetID(messageID)
	event.SetSource(source)
	event.SetType(eventType)
	event.SetTime(time.Now().UTC())
	if err := event.SetData(ceevent.ApplicationJSON, json.RawMessage(body)); err != nil {
		return fmt.Errorf("set cloudevent data: %w", err)
	}

	switch c.Envelope {
	case EnvelopeCloudEventBinary:
	case EnvelopeCloudEventStructured:
		ctx = cebinding.WithForceStructured(ctx)
	default:
		return fmt.Errorf("unsupported envelope %q", c.Envelope)
	}

	req.Header.Del("Content-Type")
	if err := cehttp.WriteRequest(ctx, cebinding.ToMessage(&event), req); err != nil {
		return fmt.Errorf("encode cloudevent: %w", err)
	}
	return nil
}
