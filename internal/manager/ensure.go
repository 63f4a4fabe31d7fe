package manager

import (
	"context"
	"fmt"
	"time"

	"fasttextd/internal/fasttext"
)

// EnsureInstance loads modelID if it is not already resident. Concurrent calls
// for the same id share one load; ctx only bounds how long the caller waits.
func (m *Manager) EnsureInstance(ctx context.Context, modelID string) error {
	id, err := m.resolveID(modelID)
	if err != nil {
		return err
	}
	if m.touchReady(id) {
		return nil
	}
	ch := m.loads.DoChan(id, func() (any, error) {
		return nil, m.load(id)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// touchReady bumps LastUsed when id is already loaded.
func (m *Manager) touchReady(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst := m.instances[id]
	if inst == nil || inst.State != StateReady {
		return false
	}
	inst.LastUsed = time.Now()
	return true
}

func (m *Manager) load(id string) error {
	start := time.Now()
	mdl, ok := m.getModelByID(id)
	if !ok {
		m.publish(Event{Name: EventModelNotFound, ModelID: id})
		return ErrModelNotFound(id)
	}
	if m.engine == nil {
		return ErrDependencyUnavailable("fasttext engine not available in this build")
	}
	if m.touchReady(id) {
		return nil
	}
	reqMB := m.estimateMB(mdl)
	log := m.log.With().Str("model", id).Int("est_mb", reqMB).Logger()
	log.Debug().Msg("ensure start")
	m.publish(Event{Name: EventEnsureStart, ModelID: id, Fields: map[string]any{"est_mb": reqMB}})

	// Evict until it fits budget + margin, if budget configured
	if m.budgetMB > 0 {
		if err := m.evictUntilFits(reqMB); err != nil {
			log.Warn().Err(err).Msg("ensure budget fail")
			m.publish(Event{Name: EventBudgetFail, ModelID: id, Fields: map[string]any{"error": err.Error()}})
			return err
		}
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrDependencyUnavailable("manager closed")
	}
	// a draining instance still holds its budget share until Unload returns
	if cur := m.instances[id]; cur != nil && cur.State == StateDraining {
		m.mu.Unlock()
		log.Debug().Msg("ensure while draining")
		return tooBusyError{modelID: id}
	}
	// reserve the estimate while loading so concurrent loads of other ids see it
	inst := &Instance{
		ID:       id,
		State:    StateLoading,
		LastUsed: time.Now(),
		EstMB:    reqMB,
		charged:  true,
		readCh:   make(chan struct{}, m.maxInflight),
		queueCh:  make(chan struct{}, m.maxQueueDepth),
	}
	m.instances[id] = inst
	m.usedEstMB += reqMB
	metricInstances.Set(float64(len(m.instances)))
	m.mu.Unlock()

	model, err := fasttext.OpenFiles(m.engine, mdl.Path, mdl.VectorsPath)
	var dim, vocab int
	if err == nil {
		dim, vocab, err = describe(model)
		if err != nil {
			_ = model.Close()
		}
	}
	metricLoadDuration.Observe(time.Since(start).Seconds())
	metricLoads.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		err = fmt.Errorf("load %s: %w", id, err)
		m.mu.Lock()
		m.removeLocked(inst)
		m.lastErr = err.Error()
		m.mu.Unlock()
		log.Error().Err(err).Msg("ensure failed")
		m.publish(Event{Name: EventEnsureError, ModelID: id, Fields: map[string]any{"error": err.Error()}})
		return err
	}

	// Commit instance as ready
	m.mu.Lock()
	if m.closed || m.instances[id] != inst || inst.State != StateLoading {
		m.mu.Unlock()
		_ = model.Close()
		return ErrDependencyUnavailable("model " + id + " was unloaded while loading")
	}
	inst.Model = model
	inst.Dimension = dim
	inst.VocabSize = vocab
	inst.Vectors = model.HasVectors()
	inst.State = StateReady
	inst.LastUsed = time.Now()
	m.loadsTotal++
	m.lastErr = ""
	m.mu.Unlock()
	dur := time.Since(start)
	log.Info().Dur("dur", dur).Int("dim", dim).Int("vocab", vocab).Msg("model ready")
	m.publish(Event{Name: EventEnsureReady, ModelID: id, Fields: map[string]any{"dur_ms": int(dur / time.Millisecond)}})
	return nil
}

func describe(model *fasttext.Model) (dim, vocab int, err error) {
	if dim, err = model.Dimension(); err != nil {
		return 0, 0, err
	}
	if vocab, err = model.WordCount(); err != nil {
		return 0, 0, err
	}
	return dim, vocab, nil
}
