package manager

import (
	"context"

	"github.com/google/uuid"
)

// Preload kicks off background loads of ids in order and returns an operation
// ID. Progress is reported through events tagged with op_id; callers can also
// poll Status() to observe state transitions.
func (m *Manager) Preload(ids []string) string {
	op := uuid.NewString()
	ids = append([]string(nil), ids...)
	m.publish(Event{Name: EventPreloadStart, Fields: map[string]any{"op_id": op, "models": len(ids)}})
	go func() {
		failed := 0
		for _, id := range ids {
			// Detached from any request context; Close stops further loads.
			if err := m.EnsureInstance(context.Background(), id); err != nil {
				failed++
				m.log.Warn().Str("op_id", op).Str("model", id).Err(err).Msg("preload failed")
			}
		}
		m.publish(Event{Name: EventPreloadDone, Fields: map[string]any{"op_id": op, "models": len(ids), "failed": failed}})
	}()
	return op
}
