package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fasttextd/internal/fasttext"
	"fasttextd/internal/fasttext/fakeengine"
	"fasttextd/internal/httpapi"
	"fasttextd/internal/manager"
	"fasttextd/internal/registry"
)

const dim = 8

var words = []string{"</s>", "у", "лукоморья", "дуб", "зелёный", "златая", "цепь", "на", "том", "златом"}

// createTempModelsDir creates a models directory with one file per name and
// returns its path.
func createTempModelsDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte("fixture"), 0o644); err != nil {
			t.Fatalf("write temp model %s: %v", p, err)
		}
	}
	return dir
}

// fixtureEngine registers every discovered model with the fake engine. Models
// whose id starts with "lid" are supervised; "broken" fails its header check.
func fixtureEngine(t *testing.T, modelsDir string) *fakeengine.Engine {
	t.Helper()
	reg, err := registry.LoadDir(modelsDir)
	if err != nil {
		t.Fatalf("scan models: %v", err)
	}
	eng := fakeengine.New()
	for _, m := range reg {
		fx := fakeengine.Fixture{Words: words, Dim: dim, Corrupt: m.ID == "broken"}
		if strings.HasPrefix(m.ID, "lid") {
			fx.Labels = []string{"__label__ru", "__label__uk", "__label__en"}
		}
		eng.AddModel(m.Path, fx)
		if m.VectorsPath != "" {
			eng.AddVectors(m.VectorsPath, dim)
		}
	}
	return eng
}

// newServer wires registry, manager and HTTP layer the way serve does.
func newServer(t *testing.T, modelsDir string, eng fasttext.Engine, cfg manager.ManagerConfig) (*httptest.Server, *manager.Manager) {
	t.Helper()
	reg, err := registry.LoadDir(modelsDir)
	if err != nil {
		t.Fatalf("scan models: %v", err)
	}
	cfg.Registry = reg
	cfg.Engine = eng
	mgr := manager.NewWithConfig(cfg)
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(func() {
		srv.Close()
		if err := mgr.Close(); err != nil {
			t.Errorf("manager close: %v", err)
		}
	})
	return srv, mgr
}

func httpDo(t *testing.T, method, url string, payload any) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, body)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	out, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, out
}

func mustDecode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("json: %v body=%s", err, b)
	}
	return v
}

func eventually(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %v", d)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// gatedEngine blocks sentence vectors until the gate is closed.
type gatedEngine struct {
	*fakeengine.Engine
	entered chan struct{}
	gate    chan struct{}
}

func (e *gatedEngine) SentenceVector(ref fasttext.ModelRef, text string) fasttext.VectorRef {
	select {
	case e.entered <- struct{}{}:
	default:
	}
	<-e.gate
	return e.Engine.SentenceVector(ref, text)
}
