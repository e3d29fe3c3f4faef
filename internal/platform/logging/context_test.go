package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const sampleTraceparent = "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01"

func TestLoggerFromContextFallsBack(t *testing.T) {
	if LoggerFromContext(context.Background()) == nil {
		t.Fatal("expected the global logger as fallback")
	}
	if LoggerFromContext(nil) == nil { //nolint:staticcheck // nil context handling
		t.Fatal("expected the global logger for nil context")
	}
}

func TestLoggerFromContextPrefersScoped(t *testing.T) {
	scoped := zap.NewNop()
	ctx := contextWithLogger(context.Background(), scoped)
	if LoggerFromContext(ctx) != scoped {
		t.Fatal("expected the request-scoped logger")
	}
}

func TestSugarFromContext(t *testing.T) {
	if SugarFromContext(context.Background()) == nil {
		t.Fatal("expected a sugared logger")
	}
}

func TestTraceIDFromContext(t *testing.T) {
	if got := TraceIDFromContext(context.Background()); got != nil {
		t.Fatalf("expected nil without middleware, got %v", *got)
	}
	if got := TraceIDFromContext(nil); got != nil { //nolint:staticcheck // nil context handling
		t.Fatal("expected nil for nil context")
	}

	ctx := contextWithTraceID(context.Background(), "trace-1")
	got := TraceIDFromContext(ctx)
	if got == nil || *got != "trace-1" {
		t.Fatalf("expected trace-1, got %v", got)
	}
}

func TestContextWithTraceIDEmptyIsNoOp(t *testing.T) {
	ctx := contextWithTraceID(context.Background(), "")
	if got := TraceIDFromContext(ctx); got != nil {
		t.Fatalf("expected no trace ID stored for empty value, got %v", *got)
	}
}

func TestTraceFields(t *testing.T) {
	fields := traceFields(sampleTraceparent, "demo-project")
	if len(fields) != 3 {
		t.Fatalf("expected 3 trace fields, got %d", len(fields))
	}

	if fields := traceFields(sampleTraceparent, ""); fields != nil {
		t.Error("expected no fields without a project ID")
	}
	if fields := traceFields("not-a-traceparent", "demo-project"); fields != nil {
		t.Error("expected no fields for a malformed header")
	}
}

func TestTraceResource(t *testing.T) {
	got := traceResource(sampleTraceparent, "demo-project")
	want := "projects/demo-project/traces/ab42124a3c573678d4d8b21ba52df3bf"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if traceResource("", "demo-project") != "" {
		t.Error("expected empty resource for missing header")
	}
}

func TestRequestLoggerUsesRequestIDWhenNoTrace(t *testing.T) {
	var traceID *string
	handler := RequestLogger()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))

	if traceID == nil || *traceID != "req-42" {
		t.Fatalf("expected request ID as correlation fallback, got %v", traceID)
	}
}

func TestAccessLoggerEmitsSummary(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	ctx := contextWithLogger(context.Background(), zap.New(core))

	handler := AccessLogger()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))

	entries := observed.FilterMessage("request completed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one access log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/v1/products" {
		t.Errorf("expected path recorded, got %v", fields["path"])
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("expected status recorded, got %v", fields["status"])
	}
}
