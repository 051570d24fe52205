package event

import (
	"sync"

	"github.com/google/uuid"
)

// Name identifies an event channel on an emitter.
type Name string

// Listener receives event payloads. A listener that panics is recovered
// and ignored; it cannot break the emitting call or other listeners.
type Listener func(payload any)

// Subscription represents one registered listener.
type Subscription struct {
	id      string
	name    Name
	emitter *Emitter
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Unsubscribe removes the listener from the emitter.
// Safe to call more than once and on a nil subscription.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.emitter == nil {
		return
	}
	s.emitter.off(s.name, s.id)
}

// Emitter maps event names to sets of listeners.
// All methods are safe for concurrent use.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[Name]map[string]Listener
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{
		listeners: make(map[Name]map[string]Listener),
	}
}

// On registers a listener for the named event and returns its
// subscription. A nil listener registers nothing and returns nil.
func (e *Emitter) On(name Name, fn Listener) *Subscription {
	if fn == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.listeners[name]
	if !ok {
		set = make(map[string]Listener)
		e.listeners[name] = set
	}

	id := uuid.New().String()
	set[id] = fn

	return &Subscription{id: id, name: name, emitter: e}
}

// Emit delivers the payload to every listener registered for the name.
// Delivery order is unspecified.
func (e *Emitter) Emit(name Name, payload any) {
	e.mu.RLock()
	set := e.listeners[name]
	snapshot := make([]Listener, 0, len(set))
	for _, fn := range set {
		snapshot = append(snapshot, fn)
	}
	e.mu.RUnlock()

	for _, fn := range snapshot {
		safeCall(fn, payload)
	}
}

// ListenerCount returns the number of listeners for the name.
func (e *Emitter) ListenerCount(name Name) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[name])
}

// Clear removes every listener for every event.
func (e *Emitter) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = make(map[Name]map[string]Listener)
}

// off removes a single listener.
func (e *Emitter) off(name Name, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.listeners[name]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(e.listeners, name)
	}
}

// safeCall invokes a listener with panic recovery.
func safeCall(fn Listener, payload any) {
	defer func() {
		_ = recover()
	}()
	fn(payload)
}
