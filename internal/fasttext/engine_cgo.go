//go:build fasttext && cgo

package fasttext

// The native wrapper is compiled from fasttext_wrapper.cc against the fastText
// sources in third_party/fastText; libfasttext is expected in ./bin next to
// the built binary.

/*
#cgo CXXFLAGS: -std=c++11 -I${SRCDIR}/../../third_party/fastText/src
#cgo LDFLAGS: -Wl,-rpath,'$ORIGIN' -L${SRCDIR}/../../bin -lfasttext -lstdc++ -lm
#include <stdlib.h>
#include "fasttext_wrapper.h"
*/
import "C"

import (
	"unsafe"
)

// NativeEngine returns the cgo-backed engine.
func NativeEngine() (Engine, error) {
	return cgoEngine{}, nil
}

type cgoEngine struct{}

func cModel(m ModelRef) *C.ft_model { return (*C.ft_model)(unsafe.Pointer(m)) }

func cDict(d DictRef) *C.ft_dict { return (*C.ft_dict)(unsafe.Pointer(d)) }

func cVector(v VectorRef) *C.ft_vector { return (*C.ft_vector)(unsafe.Pointer(v)) }

func cPrediction(p PredictionRef) *C.ft_prediction {
	return (*C.ft_prediction)(unsafe.Pointer(p))
}

// textArg passes s to C as pointer and length without copying. The callee
// reads at most the given length and does not retain the pointer.
func textArg(s string) (*C.char, C.size_t) {
	if len(s) == 0 {
		return nil, 0
	}
	return (*C.char)(unsafe.Pointer(unsafe.StringData(s))), C.size_t(len(s))
}

// bytesView aliases n bytes of C memory.
func bytesView(p *C.char, n C.size_t) []byte {
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), int(n))
}

func (cgoEngine) NewModel() ModelRef {
	return ModelRef(unsafe.Pointer(C.ft_new_model()))
}

func (cgoEngine) LoadModel(m ModelRef, path string) Status {
	cp := C.CString(path)
	defer C.free(unsafe.Pointer(cp))
	return Status(C.ft_load_model(cModel(m), cp))
}

func (cgoEngine) LoadVectors(m ModelRef, path string) Status {
	cp := C.CString(path)
	defer C.free(unsafe.Pointer(cp))
	return Status(C.ft_load_vectors(cModel(m), cp))
}

func (cgoEngine) Dimension(m ModelRef) int {
	return int(C.ft_dimension(cModel(m)))
}

func (cgoEngine) ReleaseModel(m ModelRef) {
	C.ft_release_model(cModel(m))
}

func (cgoEngine) Dictionary(m ModelRef) DictRef {
	return DictRef(unsafe.Pointer(C.ft_get_dictionary(cModel(m))))
}

func (cgoEngine) DictFind(d DictRef, word string) int {
	p, n := textArg(word)
	return int(C.ft_dict_find(cDict(d), p, n))
}

func (cgoEngine) DictGetWord(d DictRef, index int, out []byte) int {
	var n C.size_t
	var p *C.char
	if len(out) > 0 {
		p = (*C.char)(unsafe.Pointer(&out[0]))
	}
	C.ft_dict_get_word(cDict(d), C.int(index), p, C.size_t(len(out)), &n)
	return int(n)
}

func (cgoEngine) DictWordCount(d DictRef) int {
	return int(C.ft_dict_word_count(cDict(d)))
}

func (cgoEngine) WordVector(m ModelRef, word string) VectorRef {
	p, n := textArg(word)
	return VectorRef(unsafe.Pointer(C.ft_word_vector(cModel(m), p, n)))
}

func (cgoEngine) SentenceVector(m ModelRef, text string) VectorRef {
	p, n := textArg(text)
	return VectorRef(unsafe.Pointer(C.ft_sentence_vector(cModel(m), p, n)))
}

func (cgoEngine) VectorLen(v VectorRef) int {
	return int(C.ft_vector_len(cVector(v)))
}

func (cgoEngine) VectorData(v VectorRef) unsafe.Pointer {
	return unsafe.Pointer(C.ft_vector_data(cVector(v)))
}

func (cgoEngine) VectorRelease(v VectorRef) {
	C.ft_vector_release(cVector(v))
}

func (cgoEngine) Predict(m ModelRef, text string, k int) PredictionRef {
	p, n := textArg(text)
	return PredictionRef(unsafe.Pointer(C.ft_predict(cModel(m), p, n, C.int(k))))
}

func (cgoEngine) PredictionRecords(p PredictionRef) []RawRecord {
	n := int(C.ft_prediction_len(cPrediction(p)))
	recs := C.ft_prediction_records(cPrediction(p))
	if n <= 0 || recs == nil {
		return nil
	}
	out := make([]RawRecord, n)
	for i, rec := range unsafe.Slice(recs, n) {
		out[i] = RawRecord{
			Score: float32(rec.score),
			Label: bytesView(rec.label, rec.label_len),
		}
	}
	return out
}

func (cgoEngine) PredictionError(p PredictionRef) []byte {
	var n C.size_t
	msg := C.ft_prediction_error(cPrediction(p), &n)
	return bytesView(msg, n)
}

func (cgoEngine) PredictionRelease(p PredictionRef) {
	C.ft_prediction_release(cPrediction(p))
}
