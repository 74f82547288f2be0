package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayloadAcceptsValidMessage(t *testing.T) {
	t.Parallel()

	msg, err := ValidatePayload([]byte(`{"message_id":"m1","from":"+919876543210","to":"+14155550100","ts":"2025-01-15T10:00:00Z","text":"Hello","extra":{"ignored":true}}`))
	require.NoError(t, err)
	assert.Equal(t, "m1", msg.MessageID)
	assert.Equal(t, "+919876543210", msg.From)
	assert.Equal(t, "+14155550100", msg.To)
	assert.Equal(t, "2025-01-15T10:00:00Z", msg.Timestamp)
	require.NotNil(t, msg.Text)
	assert.Equal(t, "Hello", *msg.Text)
}

func TestValidatePayloadTextIsOptional(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{"message_id":"m1","from":"+111","to":"+222","ts":"2025-01-15T10:00:00Z"}`,
		`{"message_id":"m1","from":"+111","to":"+222","ts":"2025-01-15T10:00:00Z","text":null}`,
	} {
		msg, err := ValidatePayload([]byte(body))
		require.NoError(t, err, body)
		assert.Nil(t, msg.Text)
	}
}

func TestValidatePayloadTextLengthBoundary(t *testing.T) {
	t.Parallel()

	build := func(text string) []byte {
		return []byte(`{"message_id":"m1","from":"+111","to":"+222","ts":"2025-01-15T10:00:00Z","text":"` + text + `"}`)
	}

	_, err := ValidatePayload(build(strings.Repeat("a", MaxTextLength)))
	require.NoError(t, err)

	_, err = ValidatePayload(build(strings.Repeat("é", MaxTextLength)))
	require.NoError(t, err, "length counts characters, not bytes")

	_, err = ValidatePayload(build(strings.Repeat("a", MaxTextLength+1)))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []FieldViolation{{Field: "text", Reason: "must be at most 4096 characters"}}, validationErr.Violations)
}

func TestValidatePayloadTimestamps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ts    string
		valid bool
	}{
		{ts: "2025-01-15T10:00:00Z", valid: true},
		{ts: "2025-01-15T10:00:00.123456Z", valid: true},
		{ts: "2025-01-15 10:00:00Z", valid: true},
		{ts: "2025-01-15T10:00Z", valid: true},
		{ts: "2025-01-15T10:00:00", valid: false},
		{ts: "2025-01-15T10:00:00+00:00", valid: false},
		{ts: "2025-01-15T10:00:00+00:00Z", valid: false},
		{ts: "2025-13-15T10:00:00Z", valid: false},
		{ts: "2025-02-30T10:00:00Z", valid: false},
		{ts: "yesterdayZ", valid: false},
		{ts: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.ts, func(t *testing.T) {
			t.Parallel()

			_, err := ValidatePayload([]byte(`{"message_id":"m1","from":"+111","to":"+222","ts":"` + tt.ts + `"}`))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestValidatePayloadMSISDN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		number string
		valid  bool
	}{
		{number: "+12", valid: true},
		{number: "+123456789012345", valid: true},
		{number: "+1234567890123456", valid: false},
		{number: "+1", valid: false},
		{number: "+0123", valid: false},
		{number: "919876543210", valid: false},
		{number: "12345", valid: false},
		{number: "+91 98765", valid: false},
		{number: "+91abc", valid: false},
	}

	for _, tt := range tests {
		_, err := ValidatePayload([]byte(`{"message_id":"m1","from":"` + tt.number + `","to":"+222","ts":"2025-01-15T10:00:00Z"}`))
		if tt.valid {
			assert.NoError(t, err, tt.number)
			continue
		}
		var validationErr *ValidationError
		if assert.ErrorAs(t, err, &validationErr, tt.number) {
			assert.Equal(t, "from", validationErr.Violations[0].Field)
			assert.Equal(t, "must be in E.164 format", validationErr.Violations[0].Reason)
		}
	}
}

func TestValidatePayloadCollectsAllViolations(t *testing.T) {
	t.Parallel()

	_, err := ValidatePayload([]byte(`{"message_id":"   ","from":"abc","ts":"2025-01-15T10:00:00"}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []FieldViolation{
		{Field: "message_id", Reason: "must be non-empty"},
		{Field: "from", Reason: "must be in E.164 format"},
		{Field: "to", Reason: "is required"},
		{Field: "ts", Reason: "must be ISO-8601 UTC with Z"},
	}, validationErr.Violations)
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.Contains(t, err.Error(), "to: is required")
}

func TestValidatePayloadSeparatesMalformedFromInvalid(t *testing.T) {
	t.Parallel()

	for _, body := range []string{``, `{`, `not json`, `{"message_id":"m1",}`} {
		_, err := ValidatePayload([]byte(body))
		assert.ErrorIs(t, err, ErrInvalidJSON, "body %q", body)
		assert.False(t, errors.Is(err, ErrInvalidPayload), "body %q", body)
	}

	for _, body := range []string{`[]`, `"m1"`, `42`, `null`, `{"message_id":7,"from":"+111","to":"+222","ts":"2025-01-15T10:00:00Z"}`} {
		_, err := ValidatePayload([]byte(body))
		assert.ErrorIs(t, err, ErrInvalidPayload, "body %q", body)
		assert.False(t, errors.Is(err, ErrInvalidJSON), "body %q", body)
	}
}

func TestValidatePayloadReportsWrongFieldType(t *testing.T) {
	t.Parallel()

	_, err := ValidatePayload([]byte(`{"message_id":"m1","from":"+111","to":"+222","ts":"2025-01-15T10:00:00Z","text":5}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []FieldViolation{{Field: "text", Reason: "must be a string"}}, validationErr.Violations)
}
