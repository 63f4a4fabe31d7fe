package manager

import (
	"context"
	"time"
)

// beginRead reserves a queue slot and then an in-flight read slot on the
// instance serving modelID. The returned release func must be called once.
func (m *Manager) beginRead(ctx context.Context, modelID string) (*Instance, func(), error) {
	noop := func() {}
	m.mu.RLock()
	inst := m.instances[modelID]
	var state State
	if inst != nil {
		state = inst.State
	}
	m.mu.RUnlock()
	if inst == nil {
		return nil, noop, errEvicted
	}
	// If draining, reject new work to allow graceful unload
	if state == StateDraining {
		return nil, noop, tooBusyError{modelID: modelID}
	}
	if err := ctx.Err(); err != nil {
		return nil, noop, err
	}

	timer := time.NewTimer(m.maxWait)
	defer timer.Stop()
	select {
	case inst.queueCh <- struct{}{}:
	case <-ctx.Done():
		return nil, noop, ctx.Err()
	case <-timer.C:
		return nil, noop, tooBusyError{modelID: modelID}
	}

	acquired := false
	defer func() {
		if !acquired {
			<-inst.queueCh
		}
	}()
	select {
	case inst.readCh <- struct{}{}:
	case <-ctx.Done():
		return nil, noop, ctx.Err()
	case <-timer.C:
		return nil, noop, tooBusyError{modelID: modelID}
	}

	// Re-check under the lock: eviction only picks instances with empty slots.
	m.mu.Lock()
	state = inst.State
	if state == StateReady {
		inst.LastUsed = time.Now()
	}
	m.mu.Unlock()
	if state != StateReady {
		<-inst.readCh
		if state == StateEvicted {
			return nil, noop, errEvicted
		}
		return nil, noop, tooBusyError{modelID: modelID}
	}
	acquired = true
	return inst, func() { <-inst.readCh; <-inst.queueCh }, nil
}
