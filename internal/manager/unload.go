package manager

import "time"

// drainPoll is how often Unload rechecks the admission slots.
const drainPoll = 10 * time.Millisecond

// Unload drains and removes a loaded model. New reads are rejected as soon as
// the instance is draining; reads already admitted get up to drainTimeout to
// finish. The model is closed afterwards either way, and Close waits for any
// borrow still in progress.
func (m *Manager) Unload(modelID string) error {
	if modelID == "" {
		return ErrModelNotFound("(unspecified)")
	}
	m.mu.Lock()
	inst := m.instances[modelID]
	if inst == nil {
		m.mu.Unlock()
		return ErrModelNotFound(modelID)
	}
	inst.State = StateDraining
	m.mu.Unlock()
	m.publish(Event{Name: EventUnloadStart, ModelID: modelID})

	if inflight, queued, ok := waitDrained(inst, m.drainTimeout); !ok {
		m.log.Warn().Str("model", modelID).Int("inflight", inflight).Int("queue", queued).Msg("unload drain timeout")
		m.publish(Event{Name: EventUnloadTimeout, ModelID: modelID, Fields: map[string]any{"inflight": inflight, "queue": queued}})
	}

	m.mu.Lock()
	m.removeLocked(inst)
	model := inst.Model
	m.mu.Unlock()

	var err error
	if model != nil {
		err = model.Close()
	}
	m.log.Info().Str("model", modelID).Msg("unloaded")
	m.publish(Event{Name: EventUnloadDone, ModelID: modelID})
	return err
}

// waitDrained polls until inst has no queued or in-flight reads or timeout
// elapses. It returns the counts seen last.
func waitDrained(inst *Instance, timeout time.Duration) (inflight, queued int, ok bool) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(drainPoll)
	defer tick.Stop()
	for {
		inflight, queued = len(inst.readCh), len(inst.queueCh)
		if inflight == 0 && queued == 0 {
			return 0, 0, true
		}
		select {
		case <-deadline.C:
			return inflight, queued, false
		case <-tick.C:
		}
	}
}
