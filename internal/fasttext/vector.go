package fasttext

import (
	"slices"
	"unsafe"
)

// nativeVector owns one engine vector allocation.
type nativeVector struct {
	eng  Engine
	ref  VectorRef
	data []float32
}

func newNativeVector(eng Engine, ref VectorRef) *nativeVector {
	v := &nativeVector{eng: eng, ref: ref}
	n := eng.VectorLen(ref)
	if p := eng.VectorData(ref); p != nil && n > 0 {
		v.data = unsafe.Slice((*float32)(p), n)
	}
	return v
}

func (v *nativeVector) release() {
	if v.ref == nil {
		return
	}
	v.data = nil
	v.eng.VectorRelease(v.ref)
	v.ref = nil
}

// WithWordVector lends the embedding of word to fn without copying it. The
// slice aliases engine memory and must not be retained after fn returns.
// It reports false, without calling fn, when the engine produced an empty vector.
func (m *Model) WithWordVector(word string, fn func(vec []float32) error) (bool, error) {
	return m.withVector(opWordVector, func(ref ModelRef) VectorRef {
		return m.eng.WordVector(ref, word)
	}, fn)
}

// WithSentenceVector is WithWordVector for free text, tokenized by the engine.
func (m *Model) WithSentenceVector(text string, fn func(vec []float32) error) (bool, error) {
	return m.withVector(opSentenceVec, func(ref ModelRef) VectorRef {
		return m.eng.SentenceVector(ref, text)
	}, fn)
}

// WordVector returns a copy of the embedding of word.
func (m *Model) WordVector(word string) (vec []float32, found bool, err error) {
	found, err = m.WithWordVector(word, func(v []float32) error {
		vec = slices.Clone(v)
		return nil
	})
	return vec, found, err
}

// SentenceVector returns a copy of the embedding of text.
func (m *Model) SentenceVector(text string) (vec []float32, found bool, err error) {
	found, err = m.WithSentenceVector(text, func(v []float32) error {
		vec = slices.Clone(v)
		return nil
	})
	return vec, found, err
}

func (m *Model) withVector(op string, acquire func(ModelRef) VectorRef, fn func([]float32) error) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readable(op); err != nil {
		return false, err
	}
	ref := acquire(m.ref)
	if ref == nil {
		return false, newError(op, ExecutionFailure, "engine returned no vector")
	}
	v := newNativeVector(m.eng, ref)
	defer v.release()
	if len(v.data) == 0 {
		return false, nil
	}
	return true, fn(v.data)
}
