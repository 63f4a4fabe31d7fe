//go:build !fasttext || !cgo

package fasttext

// Default builds carry no native engine so they stay CGO-free. Build with
// -tags=fasttext (and CGO_ENABLED=1) to link the real one.

import "errors"

// ErrEngineUnavailable is returned by NativeEngine when the binary was built
// without the fasttext tag.
var ErrEngineUnavailable = errors.New("fasttext support not built (missing 'fasttext' build tag)")

// NativeEngine reports that no native engine is linked into this build.
func NativeEngine() (Engine, error) {
	return nil, ErrEngineUnavailable
}
