package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
)

// Vector batches are the largest bodies this API accepts; 1 MiB holds tens of
// thousands of words.
const defaultMaxBodyBytes int64 = 1 << 20

var maxBodyBytes = defaultMaxBodyBytes

// SetMaxBodyBytes caps JSON request bodies. Non-positive restores the default.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		n = defaultMaxBodyBytes
	}
	maxBodyBytes = n
}

// requestTimeout bounds the Service call of each /v1 read; 0 leaves only the
// client and shutdown cancellation.
var requestTimeout time.Duration

// SetRequestTimeout sets the per-read timeout (0 disables).
func SetRequestTimeout(d time.Duration) {
	requestTimeout = max(d, 0)
}

// corsOptions is nil while CORS is disabled.
var corsOptions *cors.Options

var (
	defaultCORSMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	defaultCORSHeaders = []string{"Content-Type", "X-Log-Level", "X-Request-Id"}
)

// SetCORSOptions enables CORS for the given origins. Empty methods or headers
// fall back to what the API uses. Call before NewMux.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	if !enabled {
		corsOptions = nil
		return
	}
	if len(methods) == 0 {
		methods = defaultCORSMethods
	}
	if len(headers) == 0 {
		headers = defaultCORSHeaders
	}
	corsOptions = &cors.Options{
		AllowedOrigins: append([]string(nil), origins...),
		AllowedMethods: append([]string(nil), methods...),
		AllowedHeaders: append([]string(nil), headers...),
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}
}

// corsMiddleware returns nil when CORS is disabled.
func corsMiddleware() func(http.Handler) http.Handler {
	if corsOptions == nil {
		return nil
	}
	return cors.Handler(*corsOptions)
}
