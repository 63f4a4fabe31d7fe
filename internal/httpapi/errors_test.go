package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"fasttextd/internal/fasttext"
	"fasttextd/internal/manager"
)

func TestStatusForMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", manager.ErrModelNotFound("m"), http.StatusNotFound},
		{"invalid", manager.ErrInvalidRequest("k must be between 1 and %d", 10), http.StatusBadRequest},
		{"dependency", manager.ErrDependencyUnavailable("no engine"), http.StatusServiceUnavailable},
		{"predict", &fasttext.PredictError{Message: "Model needs to be supervised for prediction!"}, http.StatusUnprocessableEntity},
		{"wrong kind", fmt.Errorf("load m: %w", &fasttext.Error{Op: "load", Kind: fasttext.WrongModelKind}), http.StatusUnprocessableEntity},
		{"not open", fmt.Errorf("load m: %w", &fasttext.Error{Op: "load", Kind: fasttext.ResourceNotOpen}), http.StatusServiceUnavailable},
		{"not init", &fasttext.Error{Op: "dictionary", Kind: fasttext.ModelNotInitialized}, http.StatusServiceUnavailable},
		{"execution", &fasttext.Error{Op: "vector", Kind: fasttext.ExecutionFailure}, http.StatusInternalServerError},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"canceled", context.Canceled, http.StatusServiceUnavailable},
		{"custom", mockHTTPError{msg: "teapot", code: http.StatusTeapot}, http.StatusTeapot},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.want {
				t.Fatalf("statusFor(%v)=%d want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestServiceErrorsOverHTTP(t *testing.T) {
	cases := []struct {
		err    error
		target string
		want   int
	}{
		{manager.ErrModelNotFound("m-missing"), "/v1/models/m-missing/words?word=a", http.StatusNotFound},
		{manager.ErrDependencyUnavailable("fasttext engine not available in this build"), "/v1/models/m/vocab", http.StatusServiceUnavailable},
		{manager.ErrInvalidRequest("offset must not be negative"), "/v1/models/m/vocab?offset=-1", http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := do(t, NewMux(&mockService{err: tc.err}), http.MethodGet, tc.target, "")
		if w.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.target, tc.want, w.Code)
		}
		if body := decode[map[string]any](t, w); body["error"] != tc.err.Error() {
			t.Fatalf("%s: body=%v", tc.target, body)
		}
	}
}

func TestTooBusyCountsBackpressure(t *testing.T) {
	busy := fakeBusy{}
	before := testutil.ToFloat64(backpressureTotal.WithLabelValues("queue"))
	w := do(t, NewMux(&mockService{err: busy}), http.MethodPost, "/v1/vectors/sentence", `{"text":"x"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d", w.Code)
	}
	if got := testutil.ToFloat64(backpressureTotal.WithLabelValues("queue")) - before; got != 1 {
		t.Fatalf("backpressure delta=%v", got)
	}
}

// fakeBusy reports 429 the way the manager's queue timeout does.
type fakeBusy struct{}

func (fakeBusy) Error() string   { return "too busy: m" }
func (fakeBusy) StatusCode() int { return http.StatusTooManyRequests }
