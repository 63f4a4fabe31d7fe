package manager

import "sync"

// MemoryPublisher records events in publish order. Used by tests and by
// callers that want to inspect recent lifecycle history.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

func (p *MemoryPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

// Events returns a copy of everything published so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

// Names returns the event names in publish order.
func (p *MemoryPublisher) Names() []string {
	events := p.Events()
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Name
	}
	return names
}

// Find returns the first event with the given name whose model matches. An
// empty modelID matches any model.
func (p *MemoryPublisher) Find(name, modelID string) (Event, bool) {
	for _, e := range p.Events() {
		if e.Name == name && (modelID == "" || e.ModelID == modelID) {
			return e, true
		}
	}
	return Event{}, false
}
