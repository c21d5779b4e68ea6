package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
)

// Handler is a slog.Handler that decorates every record with the chi
// request id and, when present, the current trace and span ids.
type Handler struct {
	slog.Handler
}

// NewHandler creates a JSON handler writing to stdout. opts may be nil.
func NewHandler(opts *slog.HandlerOptions) *Handler {
	return &Handler{Handler: slog.NewJSONHandler(os.Stdout, opts)}
}

// Handle adds request and tracing context attributes before calling the
// underlying handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		r.AddAttrs(slog.String("request_id", reqID))
	}

	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.HasTraceID() {
		r.AddAttrs(slog.String("trace_id", spanContext.TraceID().String()))
	}
	if spanContext.HasSpanID() {
		r.AddAttrs(slog.String("span_id", spanContext.SpanID().String()))
	}

	return h.Handler.Handle(ctx, r)
}
