package webhookclient

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BuildBody fills defaults and encodes msg. A missing id gets a random UUID
// and a missing timestamp gets the current UTC second.
func BuildBody(msg Message) ([]byte, Message, error) {
	msg.MessageID = strings.TrimSpace(msg.MessageID)
	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}
	msg.From = strings.TrimSpace(msg.From)
	msg.To = strings.TrimSpace(msg.To)
	if msg.From == "" || msg.To == "" {
		return nil, Message{}, fmt.Errorf("from and to are required")
	}
	if strings.TrimSpace(msg.Timestamp) == "" {
		msg.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05Z")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, Message{}, fmt.Errorf("encode message: %w", err)
	}
	return body, msg, nil
}

// Sign returns the X-Signature value for body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
