package decorate

import (
	"fmt"
	"sync"
	"time"

	"github.com/dshills/glint/internal/config"
	"github.com/dshills/glint/internal/decor"
	"github.com/dshills/glint/internal/diag"
	"github.com/dshills/glint/internal/event"
	"github.com/dshills/glint/internal/host"
	"github.com/dshills/glint/internal/sched"
)

// State represents the Decorator lifecycle state.
type State int

const (
	// StateUninitialized means construction finished without activation.
	StateUninitialized State = iota

	// StateActive means decorations are being produced.
	StateActive

	// StateDisabled means production is stopped but listeners remain
	// attached for instantaneous re-enable.
	StateDisabled

	// StateDisposed is terminal.
	StateDisposed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateDisabled:
		return "disabled"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// emission is an event queued under the lock and fired after release,
// so a listener calling back into the Decorator cannot deadlock.
type emission struct {
	name    event.Name
	payload any
}

// Option configures a Decorator at construction.
type Option func(*Decorator)

// WithOverrides merges configuration overrides onto the defaults.
func WithOverrides(ov config.Overrides) Option {
	return func(d *Decorator) {
		d.cfg = d.cfg.Merge(ov)
	}
}

// Decorator orchestrates the marker-to-decoration pipeline for one
// host editor. All methods are safe for concurrent use and none of the
// lifecycle methods propagates a panic or error past its boundary.
type Decorator struct {
	mu sync.Mutex

	editor  host.Editor
	cfg     config.Config
	emitter *event.Emitter

	debounce *sched.Debouncer

	// handles is the latest host decoration batch, stored only to be
	// presented back on the next replacement call.
	handles []host.HandleID

	unsubs            []host.Unsubscribe
	state             State
	listenersAttached bool
	stylesInjected    bool
}

// New creates a Decorator bound to the host editor. If the merged
// configuration is enabled and the host reports a bound document with
// the marker-query capability, the Decorator activates immediately;
// otherwise it stays inert until Enable is called.
func New(editor host.Editor, opts ...Option) *Decorator {
	d := &Decorator{
		editor:  editor,
		cfg:     config.Default(),
		emitter: event.NewEmitter(),
		state:   StateUninitialized,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.debounce = sched.NewDebouncer(d.cfg.UpdateDelay, d.debouncedRefresh)

	if d.cfg.Enabled {
		d.fire(d.locked(d.enableLocked))
	}

	return d
}

// On registers a listener on the outward event surface.
func (d *Decorator) On(name event.Name, fn event.Listener) *event.Subscription {
	return d.emitter.On(name, fn)
}

// State returns the current lifecycle state.
func (d *Decorator) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// IsActive returns true while decorations are being produced.
func (d *Decorator) IsActive() bool {
	return d.State() == StateActive
}

// Config returns a copy of the current configuration.
func (d *Decorator) Config() config.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Clone()
}

// Enable activates decoration production. Enabling when already active
// is a silent no-op; enabling a disposed Decorator does nothing.
func (d *Decorator) Enable() {
	defer d.recovered("enable")
	d.fire(d.locked(d.enableLocked))
}

// Disable stops decoration production and clears current decorations
// synchronously. Host listeners stay attached so re-enabling is
// instantaneous. A no-op unless active.
func (d *Decorator) Disable() {
	defer d.recovered("disable")
	d.fire(d.locked(d.disableLocked))
}

// Toggle flips between active and disabled.
func (d *Decorator) Toggle() {
	defer d.recovered("toggle")
	d.fire(d.locked(func() []emission {
		if d.state == StateActive {
			return d.disableLocked()
		}
		return d.enableLocked()
	}))
}

// Refresh bypasses the debounce and recomputes decorations
// synchronously and immediately.
func (d *Decorator) Refresh() {
	defer d.recovered("refresh")
	d.fire(d.locked(d.recomputeLocked))
}

// UpdateOptions merges partial options onto the current configuration.
// A delay change rebuilds the debouncer (cancelling, not firing, any
// pending run); an enabled change routes through the state machine;
// any other change triggers one debounced recomputation. A
// config-updated event always follows the side effects.
func (d *Decorator) UpdateOptions(ov config.Overrides) {
	defer d.recovered("update-options")
	d.fire(d.locked(func() []emission {
		if d.state == StateDisposed {
			return nil
		}

		old := d.cfg
		d.cfg = old.Merge(ov)

		if d.cfg.UpdateDelay != old.UpdateDelay {
			d.debounce.SetDelay(d.cfg.UpdateDelay)
		}

		var emits []emission
		switch {
		case d.cfg.Enabled != old.Enabled:
			if d.cfg.Enabled {
				emits = d.enableLocked()
			} else {
				emits = d.disableLocked()
			}
		case d.state == StateActive:
			d.debounce.Trigger()
		}

		return append(emits, emission{EventConfigUpdated, ConfigUpdatedEvent{
			Config: d.cfg.Clone(),
			Time:   time.Now(),
		}})
	}))
}

// Dispose tears the Decorator down: cancels the pending recomputation,
// clears decorations, detaches host listeners, and clears the event
// registry. Idempotent; calling twice has no additional effect.
func (d *Decorator) Dispose() {
	defer d.recovered("dispose")

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateDisposed {
		return
	}

	d.debounce.Cancel()
	d.clearDecorationsLocked()

	for _, unsub := range d.unsubs {
		unsub()
	}
	d.unsubs = nil
	d.listenersAttached = false

	d.state = StateDisposed
	d.emitter.Clear()
}

// enableLocked transitions uninitialized or disabled to active.
func (d *Decorator) enableLocked() []emission {
	if d.state == StateActive || d.state == StateDisposed {
		return nil
	}
	if !d.hostReady() {
		// Not ready: stay inert, no exception raised.
		return nil
	}

	if !d.listenersAttached {
		d.unsubs = append(d.unsubs,
			d.editor.OnMarkersChanged(d.hostEventTrigger),
			d.editor.OnCursorMoved(func(int) { d.hostEventTrigger() }),
			d.editor.OnBufferSwapped(d.hostEventTrigger),
		)
		d.listenersAttached = true
	}

	// Style injection is idempotent, checked by a presence flag.
	if !d.stylesInjected {
		d.editor.InjectStyleText(d.cfg.Colors.Text())
		d.stylesInjected = true
	}

	d.state = StateActive
	d.cfg.Enabled = true

	emits := []emission{{EventStatusChanged, StatusChangedEvent{Enabled: true, Time: time.Now()}}}
	return append(emits, d.recomputeLocked()...)
}

// disableLocked transitions active to disabled.
func (d *Decorator) disableLocked() []emission {
	if d.state != StateActive {
		return nil
	}

	d.state = StateDisabled
	d.cfg.Enabled = false
	d.debounce.Cancel()
	d.clearDecorationsLocked()

	return []emission{{EventStatusChanged, StatusChangedEvent{Enabled: false, Time: time.Now()}}}
}

// recomputeLocked runs one filter/build/replace pass.
func (d *Decorator) recomputeLocked() []emission {
	if d.state != StateActive {
		return nil
	}

	markers, ok := d.editor.QueryMarkers()
	if !ok {
		return nil
	}

	cursorLine, hasCursor := d.editor.CursorLine()

	groups := diag.Filter(markers, diag.FilterOptions{
		Allowed:        d.cfg.Severities,
		ActiveLineOnly: d.cfg.FollowCursor == config.FollowActiveLine,
		CursorLine:     cursorLine,
		HasCursor:      hasCursor,
		MaxPerLine:     d.cfg.MaxMarkersPerLine,
	})

	decorations, failed := decor.Build(groups, d.cfg)
	d.handles = d.editor.ReplaceDecorations(d.handles, decorations)

	now := time.Now()
	emits := make([]emission, 0, len(failed)+1)
	for _, f := range failed {
		emits = append(emits, emission{EventError, ErrorEvent{
			Err:     f,
			Context: "decoration-build",
			Time:    now,
		}})
	}
	return append(emits, emission{EventDecorationsUpdated, DecorationsUpdatedEvent{
		Decorations: len(decorations),
		Markers:     len(markers),
		Time:        now,
	}})
}

// clearDecorationsLocked replaces the current batch with nothing.
func (d *Decorator) clearDecorationsLocked() {
	if d.editor == nil {
		return
	}
	d.handles = d.editor.ReplaceDecorations(d.handles, nil)
}

// hostReady reports whether the host has a bound document and the
// diagnostic-query capability.
func (d *Decorator) hostReady() bool {
	if d.editor == nil {
		return false
	}
	if _, ok := d.editor.Document(); !ok {
		return false
	}
	_, ok := d.editor.QueryMarkers()
	return ok
}

// hostEventTrigger reschedules the debounced recomputation on marker,
// cursor, or buffer events from the host.
func (d *Decorator) hostEventTrigger() {
	d.mu.Lock()
	active := d.state == StateActive
	d.mu.Unlock()

	if active {
		d.debounce.Trigger()
	}
}

// debouncedRefresh is the debouncer callback.
func (d *Decorator) debouncedRefresh() {
	defer d.recovered("recompute")
	d.fire(d.locked(d.recomputeLocked))
}

// locked runs fn under the mutex and returns its queued emissions.
func (d *Decorator) locked(fn func() []emission) []emission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn()
}

// fire delivers queued emissions outside the lock.
func (d *Decorator) fire(emits []emission) {
	for _, e := range emits {
		d.emitter.Emit(e.name, e.payload)
	}
}

// recovered converts a panic escaping a lifecycle method into an error
// event. It must be deferred directly.
func (d *Decorator) recovered(context string) {
	if r := recover(); r != nil {
		d.emitter.Emit(EventError, ErrorEvent{
			Err:     fmt.Errorf("panic in %s: %v", context, r),
			Context: context,
			Time:    time.Now(),
		})
	}
}
