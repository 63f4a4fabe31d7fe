package fasttext

import (
	"errors"
	"fmt"
)

// Kind classifies failures reported across the native boundary.
type Kind int

const (
	// ResourceNotOpen means a model or vectors file could not be opened or parsed.
	ResourceNotOpen Kind = iota + 1
	// WrongModelKind means the loaded model does not support the operation.
	WrongModelKind
	// ModelNotInitialized means a read was attempted before a successful load.
	ModelNotInitialized
	// ExecutionFailure is the catch-all for unexpected native failures.
	ExecutionFailure
)

func (k Kind) String() string {
	switch k {
	case ResourceNotOpen:
		return "resource not open"
	case WrongModelKind:
		return "wrong model kind"
	case ModelNotInitialized:
		return "model not initialized"
	case ExecutionFailure:
		return "execution failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error implements error so a Kind can be matched with errors.Is.
func (k Kind) Error() string { return k.String() }

// Error is a failure of a lifecycle or read operation.
type Error struct {
	Op     string
	Path   string
	Kind   Kind
	Status Status // raw native status, zero when the failure was detected in Go
	Detail string
}

func (e *Error) Error() string {
	msg := "fasttext: " + e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.String()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Kind }

// PredictError carries the engine's free-form prediction failure message.
type PredictError struct {
	Message string
}

func (e *PredictError) Error() string { return "fasttext: predict: " + e.Message }

// KindOf reports the Kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var k Kind
	if errors.As(err, &k) {
		return k, true
	}
	return 0, false
}

// IsPredictError reports whether err came from the prediction message channel.
func IsPredictError(err error) bool {
	var pe *PredictError
	return errors.As(err, &pe)
}

func newError(op string, kind Kind, detail string) *Error {
	return &Error{Op: op, Kind: kind, Detail: detail}
}

// mapStatus translates a native load status into the error taxonomy.
func mapStatus(op, path string, s Status) error {
	var kind Kind
	switch s {
	case StatusOK:
		return nil
	case StatusNotOpen:
		kind = ResourceNotOpen
	case StatusWrongModel:
		kind = WrongModelKind
		if op == opLoad {
			// the model file header was rejected: unparsable as a model
			kind = ResourceNotOpen
		}
	case StatusNotInit:
		kind = ModelNotInitialized
	default:
		kind = ExecutionFailure
	}
	return &Error{Op: op, Path: path, Kind: kind, Status: s}
}
