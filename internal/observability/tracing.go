package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const dbTracerName = "msgsink/db"

type contextKey string

const (
	requestIDKey contextKey = "observability.request_id"
	routeKey     contextKey = "observability.route"
	messageIDKey contextKey = "observability.message_id"
)

// Span is the application-level tracing span contract.
type Span interface {
	End()
	RecordError(error)
}

type otelSpan struct {
	inner trace.Span
}

// StartDBSpan starts a database tracing span for one query operation.
func StartDBSpan(ctx context.Context, queryName, operation string) (context.Context, Span) {
	queryName = strings.TrimSpace(queryName)
	if queryName == "" {
		queryName = "unknown"
	}
	attrs := []attribute.KeyValue{
		attribute.String("db.system.name", "sqlite"),
		attribute.String("db.query_name", queryName),
		attribute.String("db.operation", strings.TrimSpace(operation)),
	}
	if messageID, ok := MessageIDFromContext(ctx); ok {
		attrs = append(attrs, attribute.String("msgsink.message_id", messageID))
	}

	ctx, span := otel.Tracer(dbTracerName).Start(ctx, "db."+queryName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)

	return ctx, otelSpan{inner: span}
}

// WithMessageID enriches context and current span with the message being ingested.
func WithMessageID(ctx context.Context, messageID string) context.Context {
	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, messageIDKey, messageID)
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("msgsink.message_id", messageID))
	return ctx
}

// WithRequestMetadata enriches context and current span with request metadata.
func WithRequestMetadata(ctx context.Context, requestID, route string) context.Context {
	requestID = strings.TrimSpace(requestID)
	route = strings.TrimSpace(route)
	if requestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, requestID)
	}
	if route != "" {
		ctx = context.WithValue(ctx, routeKey, route)
	}
	setSpanRequestAttributes(ctx, requestID, route)
	return ctx
}

// MessageIDFromContext extracts the message id under ingestion.
func MessageIDFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(messageIDKey).(string)
	return value, ok && value != ""
}

// RequestIDFromContext extracts request id.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(requestIDKey).(string)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

// RouteFromContext extracts normalized route path.
func RouteFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(routeKey).(string)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func setSpanRequestAttributes(ctx context.Context, requestID, route string) {
	span := trace.SpanFromContext(ctx)
	attrs := make([]attribute.KeyValue, 0, 2)
	if requestID != "" {
		attrs = append(attrs, attribute.String("request.id", requestID))
	}
	if route != "" {
		attrs = append(attrs, attribute.String("http.route", route))
	}
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

func (s otelSpan) End() {
	if s.inner == nil {
		return
	}
	s.inner.End()
}

func (s otelSpan) RecordError(err error) {
	if s.inner == nil || err == nil {
		return
	}
	s.inner.RecordError(err)
	s.inner.SetStatus(codes.Error, err.Error())
}
