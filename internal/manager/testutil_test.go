package manager

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"fasttextd/internal/fasttext/fakeengine"
	"fasttextd/pkg/types"
)

const testDim = 16

var testWords = []string{"</s>", "и", "в", "дуб", "зелёный", "кот", "учёный", "златом", "цепь", "й"}

// createModelFile creates a file of approximately sizeMB megabytes and returns its path.
func createModelFile(t *testing.T, dir, name string, sizeMB int) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()
	if sizeMB > 0 {
		if err := f.Truncate(int64(sizeMB) << 20); err != nil {
			t.Fatalf("truncate: %v", err)
		}
	}
	return p
}

type modelSpec struct {
	ID         string
	SizeMB     int
	Vectors    bool
	Supervised bool
	Corrupt    bool
	Dim        int
}

type testEnv struct {
	eng *fakeengine.Engine
	reg []types.Model
}

// newEnv writes model files for specs and registers matching fixtures in a
// fake engine. The test fails if the engine leaks or double-frees.
func newEnv(t *testing.T, specs ...modelSpec) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{eng: fakeengine.New()}
	for _, s := range specs {
		dim := s.Dim
		if dim == 0 {
			dim = testDim
		}
		if s.Dim < 0 {
			dim = 0
		}
		mdl := types.Model{ID: s.ID, Name: s.ID, Path: createModelFile(t, dir, s.ID+".bin", s.SizeMB)}
		fx := fakeengine.Fixture{Words: testWords, Dim: dim, Corrupt: s.Corrupt}
		if s.Supervised {
			fx.Labels = []string{"__label__a", "__label__b", "__label__c"}
		}
		env.eng.AddModel(mdl.Path, fx)
		if s.Vectors {
			mdl.VectorsPath = createModelFile(t, dir, s.ID+".vec", 0)
			env.eng.AddVectors(mdl.VectorsPath, dim)
		}
		env.reg = append(env.reg, mdl)
	}
	t.Cleanup(func() {
		st := env.eng.Stats()
		if st.DoubleReleases != 0 {
			t.Errorf("double releases: %d", st.DoubleReleases)
		}
		if n := env.eng.Live(); n != 0 {
			t.Errorf("leaked allocations: %d (%+v)", n, st)
		}
	})
	return env
}

// manager builds a Manager over env and closes it when the test ends.
func (env *testEnv) manager(t *testing.T, cfg ManagerConfig) *Manager {
	t.Helper()
	cfg.Registry = env.reg
	cfg.Engine = env.eng
	m := NewWithConfig(cfg)
	t.Cleanup(func() {
		if err := m.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return m
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %v", d)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// readCount returns the current reads counter for op and result.
func readCount(t *testing.T, op, result string) float64 {
	t.Helper()
	return testutil.ToFloat64(metricReads.WithLabelValues(op, result))
}
