package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// NewLogger builds the process logger: JSON records at level, enriched with
// request and trace context.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(WrapSlogHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

type contextAwareHandler struct {
	next slog.Handler
}

// WrapSlogHandler adds request, message and trace fields from the context to records.
func WrapSlogHandler(next slog.Handler) slog.Handler {
	if next == nil {
		next = slog.NewTextHandler(io.Discard, nil)
	}
	return &contextAwareHandler{next: next}
}

func (h *contextAwareHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextAwareHandler) Handle(ctx context.Context, record slog.Record) error {
	if requestID, ok := RequestIDFromContext(ctx); ok {
		record.AddAttrs(slog.String("request_id", requestID))
	}
	if route, ok := RouteFromContext(ctx); ok {
		record.AddAttrs(slog.String("route", route))
	}
	if messageID, ok := MessageIDFromContext(ctx); ok {
		record.AddAttrs(slog.String("message_id", messageID))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return h.next.Handle(ctx, record)
}

func (h *contextAwareHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextAwareHandler{next: h.next.WithAttrs(attrs)}
}

func (h *contextAwareHandler) WithGroup(name string) slog.Handler {
	return &contextAwareHandler{next: h.next.WithGroup(name)}
}
