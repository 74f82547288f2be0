package webhookclient

import (
	"net/http"
	"time"
)

// Envelope selects how a message is framed on the wire.
type Envelope string

const (
	// EnvelopePlain posts the message JSON as the request body.
	EnvelopePlain Envelope = ""
	// EnvelopeCloudEventBinary posts the message JSON as CloudEvent data with Ce-* headers.
	EnvelopeCloudEventBinary Envelope = "cloudevents-binary"
	// EnvelopeCloudEventStructured posts an application/cloudevents+json document.
	EnvelopeCloudEventStructured Envelope = "cloudevents-structured"
)

type Client struct {
	Endpoint   string
	Secret     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Envelope   Envelope
	// Source is the CloudEvents source attribute. Defaults to "msgsink/webhookclient".
	Source string
}

type Message struct {
	MessageID string  `json:"message_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Timestamp string  `json:"ts"`
	Text      *string `json:"text,omitempty"`
}
