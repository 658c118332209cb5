package tracing

import (
	"context"
	"errors"
	"hotelres/pkg/logger"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestParseOTLPEndpoint(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"collector:4318", "collector:4318"},
		{"http://collector", "collector:4318"},
		{"https://collector:9999/v1/traces", "collector:9999"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseOTLPEndpoint(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInit_Disabled(t *testing.T) {
	shutdown := Init("test", "", logger.Discard())
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("expected no-op shutdown, got %v", err)
	}
}

func TestMiddleware_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "GET /api/v1/rooms" {
		t.Errorf("unexpected span name %q", spans[0].Name())
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("expected error status for 404, got %v", spans[0].Status().Code)
	}
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	RecordError(span, nil)
	RecordError(span, errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	if len(ended[0].Events()) != 1 {
		t.Errorf("expected one recorded error event, got %d", len(ended[0].Events()))
	}
}

func TestHeadersRoundTrip(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	headers := map[string]string{}
	InjectHeaders(ctx, headers)
	if headers["traceparent"] == "" {
		t.Fatal("expected traceparent header")
	}

	extracted := trace.SpanContextFromContext(ExtractHeaders(context.Background(), headers))
	if extracted.TraceID() != span.SpanContext().TraceID() {
		t.Errorf("expected trace id %s, got %s", span.SpanContext().TraceID(), extracted.TraceID())
	}
}
