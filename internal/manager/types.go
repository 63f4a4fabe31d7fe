package manager

import (
	"time"

	"fasttextd/internal/fasttext"
)

// State represents lifecycle state of the manager/instances.
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateError    State = "error"
	StateDraining State = "draining"
	// StateEvicted marks an instance removed to free budget. Readers that
	// still hold a pointer to it retry against a fresh instance.
	StateEvicted State = "evicted"
)

// Instance is one loaded model (one per model id).
type Instance struct {
	ID        string
	State     State
	LastUsed  time.Time
	EstMB     int
	Model     *fasttext.Model
	Dimension int
	VocabSize int
	Vectors   bool

	// charged is true while EstMB counts toward the manager's usedEstMB.
	charged bool

	// Admission primitives
	readCh  chan struct{} // in-flight read slots
	queueCh chan struct{} // queue slots
}

func (inst *Instance) idle() bool {
	return inst.State == StateReady && len(inst.readCh) == 0 && len(inst.queueCh) == 0
}
