package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fr0stylo/msgsink/internal/app/domain"
)

// MaxTextLength is the longest accepted message text, in characters.
const MaxTextLength = 4096

var msisdnPattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// timestampLayouts are the ISO-8601 shapes accepted for ts. Fractional
// seconds are accepted by time.Parse without an explicit layout.
var timestampLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
}

// messagePayload is the wire shape of POST /webhook.
type messagePayload struct {
	MessageID string  `json:"message_id" validate:"notblank"`
	From      string  `json:"from" validate:"required,msisdn"`
	To        string  `json:"to" validate:"required,msisdn"`
	Timestamp string  `json:"ts" validate:"required,utcz"`
	Text      *string `json:"text" validate:"omitempty,max=4096"`
}

// FieldViolation is one failed field rule.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every rule a payload broke.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidPayload, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPayload
}

var (
	payloadValidatorOnce sync.Once
	payloadValidator     *validator.Validate
)

func messageValidator() *validator.Validate {
	payloadValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("msisdn", func(fl validator.FieldLevel) bool {
			return msisdnPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("utcz", func(fl validator.FieldLevel) bool {
			return isUTCZTimestamp(fl.Field().String())
		})
		payloadValidator = v
	})
	return payloadValidator
}

// ValidatePayload parses raw as a webhook message and applies the field rules.
// Invalid JSON yields ErrInvalidJSON; anything else wrong yields a *ValidationError.
func ValidatePayload(raw []byte) (domain.Message, error) {
	if !json.Valid(raw) {
		return domain.Message{}, ErrInvalidJSON
	}

	var payload messagePayload
	var violations []FieldViolation
	if err := json.Unmarshal(raw, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return domain.Message{}, ErrInvalidJSON
		}
		if typeErr.Field == "" {
			return domain.Message{}, &ValidationError{Violations: []FieldViolation{{Field: "body", Reason: "must be a JSON object"}}}
		}
		violations = append(violations, FieldViolation{Field: typeErr.Field, Reason: "must be a " + typeErr.Type.String()})
	}

	if err := messageValidator().Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return domain.Message{}, fmt.Errorf("validate payload: %w", err)
		}
		for _, fe := range fieldErrs {
			if hasViolation(violations, fe.Field()) {
				continue
			}
			violations = append(violations, FieldViolation{Field: fe.Field(), Reason: violationReason(fe)})
		}
	}
	if len(violations) > 0 {
		return domain.Message{}, &ValidationError{Violations: violations}
	}

	return domain.Message{
		MessageID: payload.MessageID,
		From:      payload.From,
		To:        payload.To,
		Timestamp: payload.Timestamp,
		Text:      payload.Text,
	}, nil
}

func isUTCZTimestamp(value string) bool {
	if !strings.HasSuffix(value, "Z") {
		return false
	}
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func hasViolation(violations []FieldViolation, field string) bool {
	for _, v := range violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

func violationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must be non-empty"
	case "msisdn":
		return "must be in E.164 format"
	case "utcz":
		return "must be ISO-8601 UTC with Z"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "failed " + fe.Tag()
	}
}
