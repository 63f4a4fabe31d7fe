package manager

import "time"

// evictUntilFits closes least recently used idle instances until requiredMB
// fits within budget minus margin. Busy, loading and draining instances are
// never chosen; when only those remain the budget is reported exceeded.
func (m *Manager) evictUntilFits(requiredMB int) error {
	for {
		m.mu.Lock()
		if m.usedEstMB+requiredMB+m.marginMB <= m.budgetMB {
			m.mu.Unlock()
			return nil
		}
		victim := m.lruIdleLocked()
		if victim == nil {
			err := budgetExceededError{requiredMB: requiredMB, usedMB: m.usedEstMB, budgetMB: m.budgetMB}
			m.mu.Unlock()
			return err
		}
		victim.State = StateEvicted
		m.removeLocked(victim)
		m.evictionsTotal++
		m.mu.Unlock()

		m.closeEvicted(victim)
	}
}

// lruIdleLocked returns the idle instance with the oldest LastUsed, or nil.
func (m *Manager) lruIdleLocked() *Instance {
	var lru *Instance
	for _, inst := range m.instances {
		if inst.idle() && (lru == nil || inst.LastUsed.Before(lru.LastUsed)) {
			lru = inst
		}
	}
	return lru
}

// removeLocked returns inst's budget share once and drops it from the table
// unless the slot already holds a newer instance.
func (m *Manager) removeLocked(inst *Instance) {
	if inst.charged {
		m.usedEstMB = max(m.usedEstMB-inst.EstMB, 0)
		inst.charged = false
	}
	if m.instances[inst.ID] == inst {
		delete(m.instances, inst.ID)
	}
	metricInstances.Set(float64(len(m.instances)))
}

func (m *Manager) closeEvicted(inst *Instance) {
	if inst.Model != nil {
		_ = inst.Model.Close()
	}
	metricEvictions.Inc()
	idle := time.Since(inst.LastUsed).Round(time.Millisecond)
	m.log.Info().Str("model", inst.ID).Int("freed_mb", inst.EstMB).Dur("idle", idle).Msg("evicted")
	m.publish(Event{Name: EventEvict, ModelID: inst.ID, Fields: map[string]any{"freed_mb": inst.EstMB}})
}
