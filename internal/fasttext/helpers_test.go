package fasttext_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fasttextd/internal/fasttext"
	"fasttextd/internal/fasttext/fakeengine"
)

const (
	unsupervisedPrefix = "testdata/unsupervised_model"
	supervisedPrefix   = "testdata/supervised_model"
	corruptPath        = "testdata/corrupt.bin"
	emptyPath          = "testdata/empty_vectors.bin"
	testDim            = 100
)

var testWords = []string{
	"</s>", "и", "в", "не", "на", "я", "что", "с", "он", "как",
	"а", "его", "но", "к", "все", "у", "дуб", "лукоморья", "зелёный", "цепь",
	"кот", "учёный", "златом", "том",
}

var testLabels = []string{
	"__label__poetry", "__label__prose", "__label__news", "__label__science", "__label__sport",
}

// newEngine returns a fake engine with the standard fixtures registered. The
// test fails if any allocation outlives it or is released twice.
func newEngine(t *testing.T) *fakeengine.Engine {
	t.Helper()
	eng := fakeengine.New()
	eng.AddModel(unsupervisedPrefix+".bin", fakeengine.Fixture{Words: testWords, Dim: testDim})
	eng.AddVectors(unsupervisedPrefix+".vec", testDim)
	eng.AddModel(supervisedPrefix+".bin", fakeengine.Fixture{Words: testWords, Dim: testDim, Labels: testLabels})
	eng.AddModel(corruptPath, fakeengine.Fixture{Corrupt: true})
	eng.AddModel(emptyPath, fakeengine.Fixture{Words: testWords})
	eng.AddVectors("testdata/wrong_dim.vec", testDim/2)
	t.Cleanup(func() {
		st := eng.Stats()
		if st.DoubleReleases != 0 {
			t.Errorf("double releases: %d", st.DoubleReleases)
		}
		if n := eng.Live(); n != 0 {
			t.Errorf("leaked allocations: %d (%+v)", n, st)
		}
	})
	return eng
}

// openModel opens prefix and closes it at the end of the test.
func openModel(t *testing.T, eng fasttext.Engine, prefix string) *fasttext.Model {
	t.Helper()
	m, err := fasttext.Open(eng, prefix)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// loadModel loads only the model file.
func loadModel(t *testing.T, eng fasttext.Engine, path string) *fasttext.Model {
	t.Helper()
	m, err := fasttext.OpenFiles(eng, path, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}
