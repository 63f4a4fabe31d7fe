package manager

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"fasttextd/internal/fasttext"
	"fasttextd/pkg/types"
)

type Manager struct {
	mu           sync.RWMutex
	engine       fasttext.Engine
	registry     []types.Model
	budgetMB     int
	marginMB     int
	usedEstMB    int
	defaultModel string
	instances    map[string]*Instance
	lastErr      string
	closed       bool

	// Queue config
	maxQueueDepth int
	maxInflight   int
	maxWait       time.Duration
	drainTimeout  time.Duration

	// Request limits
	maxK      int
	maxBatch  int
	normalize func(string) string

	loads          singleflight.Group
	loadsTotal     uint64
	evictionsTotal uint64

	publisher EventPublisher
	log       zerolog.Logger
	startTime time.Time
}

// SetEventPublisher replaces the event sink; nil restores the no-op publisher.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == nil {
		p = noopPublisher{}
	}
	m.publisher = p
}

func (m *Manager) publish(e Event) {
	m.mu.RLock()
	p := m.publisher
	m.mu.RUnlock()
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	if e.Fields == nil {
		e.Fields = map[string]any{}
	}
	p.Publish(e)
}

// Ready reports whether the manager can serve reads: an engine is present and
// the default model, when configured, is loaded.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed || m.engine == nil {
		return false
	}
	if m.defaultModel == "" {
		return true
	}
	inst := m.instances[m.defaultModel]
	return inst != nil && inst.State == StateReady
}

func (m *Manager) ListModels() []types.Model {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// return a shallow copy to avoid external mutation
	out := make([]types.Model, len(m.registry))
	copy(out, m.registry)
	return out
}

// Close unloads every instance and rejects further loads.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	ids := make([]string, 0, len(m.instances))
	for id := range m.instances {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := m.Unload(id); err != nil && !IsModelNotFound(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
