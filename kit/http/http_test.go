package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/superj80820/personalink/kit/code"
	traceKit "github.com/superj80820/personalink/kit/trace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestCustomBeforeCtx(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "http://links.example.com/create", nil)
	r.Header.Set("X-Forwarded-For", "10.0.0.7, 172.16.0.1")
	r.Header.Set("User-Agent", "test-agent")

	ctx := CustomBeforeCtx(traceKit.CreateNoOpTracer())(context.Background(), r)

	assert.Equal(t, "links.example.com", GetHost(ctx))
	assert.Equal(t, "http", GetScheme(ctx))
	assert.Equal(t, http.MethodPost, GetMethod(ctx))
	assert.Equal(t, "/create", GetURL(ctx))
	assert.Equal(t, "10.0.0.7", GetIP(ctx))
	assert.Equal(t, "test-agent", GetUserAgent(ctx))
	assert.NotZero(t, GetRequestID(ctx))
	assert.Equal(t, "http://links.example.com", GetBaseURL(ctx))
}

func TestReadScheme(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "http", ReadScheme(r))

	r.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https", ReadScheme(r))

	r.TLS = nil
	r.Header.Set("X-Forwarded-Proto", "HTTPS")
	assert.Equal(t, "https", ReadScheme(r))
}

func TestEmptyCtx(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "", GetIP(ctx))
	assert.Equal(t, int64(0), GetRequestID(ctx))
	assert.Equal(t, "http://", GetBaseURL(ctx))
}

func TestEncodeHTTPErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	EncodeHTTPErrorResponse()(context.Background(), errors.Wrap(code.CreateErrorCode(http.StatusNotFound), "lookup failed"), w)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]any
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(http.StatusNotFound), body["http_code"])
	assert.Equal(t, "not found", body["message"])
}

func TestRequestSpanLifetime(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")

	r := httptest.NewRequest(http.MethodGet, "http://links.example.com/link/alice1", nil)
	ctx := CustomBeforeCtx(tracer)(context.Background(), r)
	assert.Len(t, recorder.Started(), 1)
	assert.Len(t, recorder.Ended(), 0)

	w := httptest.NewRecorder()
	CustomAfterCtx(ctx, w)

	ended := recorder.Ended()
	assert.Len(t, ended, 1)
	assert.Equal(t, "/link/alice1", ended[0].Name())
	assert.Equal(t, ended[0].SpanContext().TraceID().String(), w.Header().Get("X-B3-TraceId"))
	assert.Equal(t, GetTraceID(ctx), w.Header().Get("X-B3-TraceId"))
}

func TestErrorResponseEndsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")

	ctx := CustomBeforeCtx(tracer)(context.Background(), httptest.NewRequest(http.MethodGet, "http://links.example.com/healthz", nil))
	EncodeHTTPErrorResponse()(ctx, errors.New("store down"), httptest.NewRecorder())

	assert.Len(t, recorder.Ended(), 1)
}
