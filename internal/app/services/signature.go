package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature reports whether signatureHex is the HMAC-SHA256 of body
// under secret. An empty secret never verifies.
func VerifySignature(secret, body []byte, signatureHex string) bool {
	if len(secret) == 0 {
		return false
	}
	signatureHex = strings.ToLower(strings.TrimSpace(signatureHex))
	if signatureHex == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(secret, body)), []byte(signatureHex))
}

// Sign returns the lowercase hex HMAC-SHA256 of body under secret.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
