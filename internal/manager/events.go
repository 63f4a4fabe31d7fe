package manager

import "time"

// Event is one manager lifecycle notification. ModelID is empty for events
// that span several models (preload).
type Event struct {
	Name    string
	ModelID string
	Time    time.Time
	Fields  map[string]any
}

// Warning reports whether the event describes a failure or a degraded path.
func (e Event) Warning() bool {
	switch e.Name {
	case EventEnsureError, EventBudgetFail, EventModelNotFound, EventUnloadTimeout:
		return true
	}
	return false
}

// EventPublisher receives manager events. Publish is called synchronously on
// the manager's goroutines and must return quickly.
type EventPublisher interface {
	Publish(Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// Event names.
const (
	EventEnsureStart   = "ensure_start"
	EventEnsureReady   = "ensure_ready"
	EventEnsureError   = "ensure_error"
	EventModelNotFound = "ensure_model_not_found"
	EventBudgetFail    = "ensure_budget_fail"
	EventEvict         = "evict"
	EventUnloadStart   = "unload_start"
	EventUnloadTimeout = "unload_timeout"
	EventUnloadDone    = "unload_done"
	EventPreloadStart  = "preload_start"
	EventPreloadDone   = "preload_done"
)
