package decorate

import (
	"time"

	"github.com/dshills/glint/internal/config"
	"github.com/dshills/glint/internal/event"
)

// Event names on the Decorator's outward event surface.
const (
	// EventDecorationsUpdated fires after each completed recomputation.
	EventDecorationsUpdated event.Name = "decorations-updated"

	// EventConfigUpdated fires after every UpdateOptions call.
	EventConfigUpdated event.Name = "config-updated"

	// EventStatusChanged fires when the enabled state flips.
	EventStatusChanged event.Name = "status-changed"

	// EventError fires for reported internal failures.
	EventError event.Name = "error"
)

// DecorationsUpdatedEvent is the payload for EventDecorationsUpdated.
type DecorationsUpdatedEvent struct {
	// Decorations is the number of decorations in the new batch.
	Decorations int

	// Markers is the number of input markers before filtering.
	Markers int

	Time time.Time
}

// ConfigUpdatedEvent is the payload for EventConfigUpdated.
type ConfigUpdatedEvent struct {
	// Config is a copy of the configuration after the merge.
	Config config.Config

	Time time.Time
}

// StatusChangedEvent is the payload for EventStatusChanged.
type StatusChangedEvent struct {
	Enabled bool
	Time    time.Time
}

// ErrorEvent is the payload for EventError.
type ErrorEvent struct {
	Err error

	// Context is a free-text tag naming where the error arose.
	Context string

	Time time.Time
}
