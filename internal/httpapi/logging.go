package httpapi

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is the structured logger for the HTTP layer. Nop until SetLogger.
var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = l.With().Str("component", "http").Logger() }

func logger() *zerolog.Logger { return &zlog }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// default request log level, read once from FASTTEXTD_LOG_LEVEL
var defaultLogLevel = sync.OnceValue(func() LogLevel {
	v, ok := os.LookupEnv("FASTTEXTD_LOG_LEVEL")
	if !ok {
		return LevelInfo
	}
	return parseLevel(v)
})

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel()
}

// errNote carries the service error from a handler to requestLogger.
type errNote struct{ err error }

type errNoteKey struct{}

func noteError(r *http.Request, err error) {
	if n, ok := r.Context().Value(errNoteKey{}).(*errNote); ok {
		n.err = err
	}
}

// requestLogger writes one line per request: errors (status >= 500) at
// LevelError, everything at LevelInfo, plus query detail at LevelDebug.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lvl := requestLogLevel(r)
		if lvl == LevelOff {
			next.ServeHTTP(w, r)
			return
		}
		note := &errNote{}
		r = r.WithContext(context.WithValue(r.Context(), errNoteKey{}, note))
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)

		if sr.status < 500 && lvl < LevelInfo {
			return
		}
		ev := zlog.Info()
		if sr.status >= 500 {
			ev = zlog.Error()
		}
		ev = ev.Str("method", r.Method).
			Str("path", routeLabel(r)).
			Int("status", sr.status).
			Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			ev = ev.Str("request_id", rid)
		}
		if lvl >= LevelDebug {
			ev = ev.Str("url", r.URL.String())
		}
		if note.err != nil {
			ev = ev.Err(note.err)
		}
		ev.Msg("request")
	})
}
