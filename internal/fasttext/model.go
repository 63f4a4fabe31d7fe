package fasttext

import (
	"sync"
)

const (
	opNew          = "new"
	opLoad         = "load"
	opLoadVectors  = "load vectors"
	opDimension    = "dimension"
	opDictionary   = "dictionary"
	opWordVector   = "word vector"
	opSentenceVec  = "sentence vector"
	opPredict      = "predict"
	modelExtension = ".bin"
	vecExtension   = ".vec"
)

type modelState int

const (
	stateNew modelState = iota
	stateReady
	stateFailed
	stateReleased
)

func (s modelState) String() string {
	switch s {
	case stateNew:
		return "new"
	case stateReady:
		return "ready"
	case stateFailed:
		return "failed"
	case stateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Model owns one native model handle from construction to Close.
//
// Load and LoadVectors are exclusive; every read operation holds a shared lock
// for the lifetime of its borrow, so a reload or Close waits until all views
// derived from the handle are gone.
type Model struct {
	mu      sync.RWMutex
	eng     Engine
	ref     ModelRef
	state   modelState
	vectors bool
}

// New constructs an empty native model. Only Load is valid on the result.
func New(eng Engine) (*Model, error) {
	if eng == nil {
		return nil, newError(opNew, ExecutionFailure, "nil engine")
	}
	ref := eng.NewModel()
	if ref == nil {
		return nil, newError(opNew, ExecutionFailure, "engine returned no model")
	}
	return &Model{eng: eng, ref: ref}, nil
}

// Open loads prefix.bin and prefix.vec into a new model.
func Open(eng Engine, prefix string) (*Model, error) {
	return OpenFiles(eng, prefix+modelExtension, prefix+vecExtension)
}

// OpenFiles loads a model file and, when vectorsPath is not empty, its vector
// table. The native handle is released if any step fails.
func OpenFiles(eng Engine, modelPath, vectorsPath string) (m *Model, err error) {
	m, err = New(eng)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = m.Close()
			m = nil
		}
	}()
	if err = m.Load(modelPath); err != nil {
		return m, err
	}
	if vectorsPath != "" {
		if err = m.LoadVectors(vectorsPath); err != nil {
			return m, err
		}
	}
	return m, nil
}

// Load reads the model structure from path. Calling it again reloads the model.
// On failure the model refuses reads until a later Load succeeds.
func (m *Model) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == stateReleased {
		return &Error{Op: opLoad, Path: path, Kind: ModelNotInitialized, Detail: "model released"}
	}
	if !validPath(path) {
		m.state = stateFailed
		return &Error{Op: opLoad, Path: path, Kind: ResourceNotOpen, Detail: "invalid path"}
	}
	if err := mapStatus(opLoad, path, m.eng.LoadModel(m.ref, path)); err != nil {
		m.state = stateFailed
		return err
	}
	m.state = stateReady
	m.vectors = false
	return nil
}

// LoadVectors loads the vector table that accompanies the model.
func (m *Model) LoadVectors(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != stateReady {
		return &Error{Op: opLoadVectors, Path: path, Kind: ModelNotInitialized, Detail: "model " + m.state.String()}
	}
	if !validPath(path) {
		m.state = stateFailed
		return &Error{Op: opLoadVectors, Path: path, Kind: ResourceNotOpen, Detail: "invalid path"}
	}
	if err := mapStatus(opLoadVectors, path, m.eng.LoadVectors(m.ref, path)); err != nil {
		m.state = stateFailed
		return err
	}
	m.vectors = true
	return nil
}

// Close releases the native handle. It is safe to call more than once.
func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == stateReleased {
		return nil
	}
	m.eng.ReleaseModel(m.ref)
	m.ref = nil
	m.state = stateReleased
	return nil
}

// Ready reports whether read operations are currently accepted.
func (m *Model) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == stateReady
}

// HasVectors reports whether a vector table was loaded after the last Load.
func (m *Model) HasVectors() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == stateReady && m.vectors
}

// Dimension returns the length of the model's vectors.
func (m *Model) Dimension() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readable(opDimension); err != nil {
		return 0, err
	}
	return m.eng.Dimension(m.ref), nil
}

// readable must be called with m.mu held.
func (m *Model) readable(op string) error {
	if m.state != stateReady {
		return newError(op, ModelNotInitialized, "model "+m.state.String())
	}
	return nil
}
