package fasttext

import "unsafe"

// Opaque references handed out by an Engine. They are never dereferenced by
// this package; only the Engine that produced a reference may interpret it.
type (
	ModelRef      unsafe.Pointer
	DictRef       unsafe.Pointer
	VectorRef     unsafe.Pointer
	PredictionRef unsafe.Pointer
)

// Status is the integer result of a native load call.
type Status int32

// Status codes reported by the native wrapper.
const (
	StatusOK         Status = 0
	StatusNotOpen    Status = 1
	StatusWrongModel Status = 2
	StatusNotInit    Status = 3
)

// RawRecord is one prediction record as the engine exposes it. Label aliases
// engine memory and is only valid until PredictionRelease.
type RawRecord struct {
	Score float32
	Label []byte
}

// Engine is the fixed operation set of the native embedding engine.
//
// Implementations must tolerate concurrent read calls (dictionary, vector and
// predict operations) against a model once its load calls have returned.
// Strings are passed with their length; implementations must not rely on a
// terminating NUL.
type Engine interface {
	NewModel() ModelRef
	LoadModel(m ModelRef, path string) Status
	LoadVectors(m ModelRef, path string) Status
	Dimension(m ModelRef) int
	ReleaseModel(m ModelRef)

	// Dictionary returns a reference owned by m; it is never released on its own.
	Dictionary(m ModelRef) DictRef
	// DictFind returns the word index, or a negative value when absent.
	DictFind(d DictRef, word string) int
	// DictGetWord copies at most len(out) bytes of the word into out and
	// returns the full length of the word, which may exceed len(out).
	DictGetWord(d DictRef, index int, out []byte) int
	DictWordCount(d DictRef) int

	WordVector(m ModelRef, word string) VectorRef
	SentenceVector(m ModelRef, text string) VectorRef
	VectorLen(v VectorRef) int
	// VectorData points at VectorLen(v) contiguous float32 values owned by v.
	VectorData(v VectorRef) unsafe.Pointer
	VectorRelease(v VectorRef)

	Predict(m ModelRef, text string, k int) PredictionRef
	PredictionRecords(p PredictionRef) []RawRecord
	// PredictionError returns the error text, or nil when prediction succeeded.
	PredictionError(p PredictionRef) []byte
	PredictionRelease(p PredictionRef)
}
