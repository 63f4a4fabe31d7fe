// Package fasttext binds a pre-trained fastText model to Go. The embedding and
// prediction algorithms live in the native engine; this package owns the
// boundary: handle lifetime, borrowed views into native memory, text
// marshaling and error mapping. It is structured into small files by concern:
//
//   - engine.go: the Engine interface (the fixed native operation set) and
//     the opaque reference types.
//   - model.go: Model, the owner of one native handle (New, Load,
//     LoadVectors, Close, Open, OpenFiles).
//   - dictionary.go: the scoped vocabulary view.
//   - vector.go: scoped zero-copy word and sentence vectors.
//   - prediction.go: predict results copied out of the native allocation.
//   - marshal.go: explicit-length text decoding.
//   - errors.go: Kind, Error and PredictError.
//
// Build tags and engines:
//
//   - Native (standard): engine_cgo.go and fasttext_wrapper.{h,cc}, enabled
//     with `-tags=fasttext` and CGO_ENABLED=1. Links libfasttext from ./bin.
//   - Without the tag engine_stub.go is compiled and NativeEngine returns
//     ErrEngineUnavailable.
//   - Tests use the in-memory engine in package fakeengine.
//
// Borrowed memory is only reachable inside callbacks (WithDictionary,
// WithWordVector, WithSentenceVector). A Model holds a read lock for the whole
// callback, so Load, LoadVectors and Close cannot run while a view is alive.
// Slices passed to vector callbacks must not be retained; use WordVector or
// SentenceVector for an owned copy. Callbacks must not call back into the same
// Model: a Load waiting for the write lock blocks a nested read lock.
package fasttext
