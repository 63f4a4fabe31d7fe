package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"INFO":  LevelInfo,
		"debug": LevelDebug,
		"weird": LevelInfo, // default
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { zlog = zerolog.Nop() })
	return &buf
}

func TestRequestLoggerWritesOneLine(t *testing.T) {
	buf := captureLogs(t)
	h := NewMux(&mockService{err: errors.New("boom")})

	req := httptest.NewRequest(http.MethodGet, "/v1/models/m/words/1?log=info", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["level"] != "error" || entry["status"] != float64(500) || entry["error"] != "boom" {
		t.Fatalf("entry: %v", entry)
	}
	if entry["path"] != "/v1/models/{id}/words/{index}" || entry["component"] != "http" {
		t.Fatalf("entry: %v", entry)
	}
	if _, ok := entry["request_id"]; !ok {
		t.Fatalf("request id missing: %v", entry)
	}
}

func TestRequestLoggerRespectsLevel(t *testing.T) {
	buf := captureLogs(t)
	h := NewMux(&mockService{})

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz?log=off", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz?log=error", nil))
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz?log=debug", nil))
	if !strings.Contains(buf.String(), `"url":"/healthz?log=debug"`) {
		t.Fatalf("debug line missing url: %q", buf.String())
	}
}
