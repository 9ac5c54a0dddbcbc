package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// withMemoryExporter installs an in-memory exporter as the global provider
// for the duration of one test.
func withMemoryExporter(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	return exporter
}

func tracedRequest(t *testing.T, status int, headers map[string]string) (*tracetest.InMemoryExporter, *httptest.ResponseRecorder) {
	t.Helper()

	exporter := withMemoryExporter(t)

	r := chi.NewRouter()
	r.Use(Tracing("auth-server"))
	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return exporter, rec
}

func TestTracing_NamesSpanAfterRoutePattern(t *testing.T) {
	exporter, rec := tracedRequest(t, http.StatusOK, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	spans := exporter.GetSpans()
	require.NotEmpty(t, spans)
	assert.Equal(t, "POST /auth/login", spans[0].Name)
}

func TestTracing_RecordsStatusCodeAttribute(t *testing.T) {
	exporter, _ := tracedRequest(t, http.StatusUnauthorized, nil)

	spans := exporter.GetSpans()
	require.NotEmpty(t, spans)

	var status int64 = -1
	for _, attr := range spans[0].Attributes {
		if string(attr.Key) == "http.status_code" {
			status = attr.Value.AsInt64()
		}
	}
	assert.Equal(t, int64(401), status)
}

func TestTracing_ServerErrorMarksSpan(t *testing.T) {
	exporter, _ := tracedRequest(t, http.StatusInternalServerError, nil)

	spans := exporter.GetSpans()
	require.NotEmpty(t, spans)
	// codes.Error == 1 in the Go SDK.
	assert.Equal(t, uint32(1), uint32(spans[0].Status.Code))
}

func TestTracing_ClientErrorLeavesSpanUnset(t *testing.T) {
	exporter, _ := tracedRequest(t, http.StatusBadRequest, nil)

	spans := exporter.GetSpans()
	require.NotEmpty(t, spans)
	assert.Equal(t, uint32(0), uint32(spans[0].Status.Code))
}

func TestTracing_HonorsInboundTraceparent(t *testing.T) {
	exporter, rec := tracedRequest(t, http.StatusOK, map[string]string{
		"traceparent": "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01",
	})

	spans := exporter.GetSpans()
	require.NotEmpty(t, spans)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext.TraceID().String())
	assert.NotEmpty(t, rec.Header().Get("traceparent"), "trace context must propagate outward")
}

func TestTracing_InjectsTraceparentWithoutInboundContext(t *testing.T) {
	_, rec := tracedRequest(t, http.StatusOK, nil)

	assert.NotEmpty(t, rec.Header().Get("traceparent"))
}
