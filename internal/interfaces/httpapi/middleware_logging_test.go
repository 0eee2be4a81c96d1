package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

func TestRequestLogging_RequestID(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := logging.FromZap(zap.New(core))
	handler := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/tournaments/t-1/standings", nil)
	req.Header.Set(requestIDHeader, "caller-id-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "caller-id-1" {
		t.Fatalf("expected caller request id echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "bad id with spaces")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	generated := rec.Header().Get(requestIDHeader)
	if generated == "" || generated == "bad id with spaces" {
		t.Fatalf("expected generated request id, got %q", generated)
	}

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 2 {
		t.Fatalf("expected two request log lines, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "caller-id-1" || fields["status"] != int64(http.StatusTeapot) {
		t.Fatalf("unexpected log fields: %+v", fields)
	}
}
