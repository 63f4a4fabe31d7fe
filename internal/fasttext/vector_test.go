package fasttext_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"fasttextd/internal/fasttext"
	"fasttextd/internal/fasttext/fakeengine"
)

func TestWordVector(t *testing.T) {
	m := openModel(t, newEngine(t), unsupervisedPrefix)

	vec, found, err := m.WordVector("златом")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, vec, testDim)
	assert.Equal(t, fakeengine.Embed("златом", testDim), vec)
}

func TestWithWordVectorReleasesOnce(t *testing.T) {
	eng := newEngine(t)
	m := openModel(t, eng, unsupervisedPrefix)

	found, err := m.WithWordVector("дуб", func(vec []float32) error {
		assert.Len(t, vec, testDim)
		assert.Equal(t, 1, eng.Stats().LiveVectors)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, found)
	st := eng.Stats()
	assert.Equal(t, 0, st.LiveVectors)
	assert.Equal(t, 1, st.Vectors)
	assert.Equal(t, 0, st.DoubleReleases)
}

func TestWithWordVectorReleasesOnPanic(t *testing.T) {
	eng := newEngine(t)
	m := openModel(t, eng, unsupervisedPrefix)

	assert.Panics(t, func() {
		_, _ = m.WithWordVector("дуб", func([]float32) error { panic("boom") })
	})
	assert.Equal(t, 0, eng.Stats().LiveVectors)
	// the read lock was released too
	require.NoError(t, m.Load(unsupervisedPrefix+".bin"))
}

func TestWithWordVectorPropagatesError(t *testing.T) {
	eng := newEngine(t)
	m := openModel(t, eng, unsupervisedPrefix)

	sentinel := errors.New("stop")
	found, err := m.WithWordVector("дуб", func([]float32) error { return sentinel })
	assert.True(t, found)
	assert.Same(t, sentinel, err)
	assert.Equal(t, 0, eng.Stats().LiveVectors)
}

func TestBorrowedVectorIsEngineMemory(t *testing.T) {
	eng := newEngine(t)
	m := openModel(t, eng, unsupervisedPrefix)

	var alias []float32
	_, err := m.WithWordVector("кот", func(vec []float32) error {
		alias = vec
		return nil
	})
	require.NoError(t, err)
	// the fake engine poisons released memory
	assert.True(t, math.IsNaN(float64(alias[0])))

	owned, _, err := m.WordVector("кот")
	require.NoError(t, err)
	assert.False(t, math.IsNaN(float64(owned[0])))
}

func TestEmptyVectorIsAbsent(t *testing.T) {
	eng := newEngine(t)
	m := loadModel(t, eng, emptyPath)

	called := false
	found, err := m.WithWordVector("дуб", func([]float32) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, called)

	vec, found, err := m.SentenceVector("дуб зелёный")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, vec)
}

func TestSentenceVector(t *testing.T) {
	eng := newEngine(t)
	m := openModel(t, eng, unsupervisedPrefix)

	const text = "у лукоморья дуб зелёный"
	before := eng.Stats()
	vec, found, err := m.SentenceVector(text)
	require.NoError(t, err)
	require.True(t, found)
	after := eng.Stats()
	assert.Equal(t, 1, after.SentenceVectorCalls-before.SentenceVectorCalls)
	assert.Equal(t, 0, after.WordVectorCalls-before.WordVectorCalls)
	assert.InDeltaSlice(t, fakeengine.EmbedSentence(text, testDim), vec, 1e-6)

	assert.NotEqual(t, make([]float32, testDim), vec)
	for _, tok := range []string{"у", "лукоморья", "дуб", "зелёный"} {
		word, _, err := m.WordVector(tok)
		require.NoError(t, err)
		assert.NotEqual(t, word, vec, "sentence vector equals the vector of %q", tok)
	}

	// a one-token sentence averages to that token's vector
	word, _, err := m.WordVector("дуб")
	require.NoError(t, err)
	sent, _, err := m.SentenceVector("дуб")
	require.NoError(t, err)
	assert.InDeltaSlice(t, word, sent, 1e-6)

	empty, found, err := m.SentenceVector("")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, empty, testDim)
}

func TestVectorReadsRequireLoad(t *testing.T) {
	eng := newEngine(t)
	m, err := fasttext.New(eng)
	require.NoError(t, err)
	defer m.Close()

	_, _, err = m.WordVector("дуб")
	assert.ErrorIs(t, err, fasttext.ModelNotInitialized)
	_, _, err = m.SentenceVector("дуб")
	assert.ErrorIs(t, err, fasttext.ModelNotInitialized)
}

func TestNilVectorIsExecutionFailure(t *testing.T) {
	eng := newEngine(t)
	m := openModel(t, eng, unsupervisedPrefix)
	eng.NilAllocations = true
	defer func() { eng.NilAllocations = false }()

	_, _, err := m.WordVector("дуб")
	assert.ErrorIs(t, err, fasttext.ExecutionFailure)
	_, err = m.Predict("дуб", 1)
	assert.ErrorIs(t, err, fasttext.ExecutionFailure)
}

func TestConcurrentReads(t *testing.T) {
	eng := newEngine(t)
	m := openModel(t, eng, unsupervisedPrefix)
	want := fakeengine.Embed("златом", testDim)

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			for j := 0; j < 50; j++ {
				vec, _, err := m.WordVector("златом")
				if err != nil {
					return err
				}
				if vec[7] != want[7] {
					return errors.New("vector mismatch")
				}
				if _, _, err := m.IndexOf("златом"); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 16*50, eng.Stats().Vectors)
}
