// Package host declares the contract glint consumes from a host editor.
//
// The host owns the text buffer, the diagnostic markers, and all
// rendering; glint only reads marker snapshots and hands back decoration
// batches. Decoration handles are opaque: glint stores the latest batch
// purely to present it back on the next replacement call and never
// dereferences or interprets it.
package host

import "github.com/dshills/glint/internal/diag"

// DocumentID identifies the host's bound document.
type DocumentID string

// HandleID is an opaque host-assigned decoration identifier.
type HandleID string

// Unsubscribe detaches a listener registered with the host.
// Implementations must tolerate being called more than once.
type Unsubscribe func()

// Stickiness controls how a decoration range behaves when text is typed
// at its edges.
type Stickiness int

const (
	// StickinessAlwaysGrows expands the range on edits at either edge.
	StickinessAlwaysGrows Stickiness = iota

	// StickinessNeverGrows keeps the range fixed on edge edits.
	StickinessNeverGrows

	// StickinessGrowsBefore expands only when typing before the range.
	StickinessGrowsBefore

	// StickinessGrowsAfter expands only when typing after the range.
	StickinessGrowsAfter
)

// Range is a span in the bound document. Lines and columns are 1-based;
// decorations produced by glint always span a full line with both
// columns set to 1 and the whole-line flag set, since the goal is
// line-level annotation rather than token-level underlining.
type Range struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// LineRange returns the whole-line range for a line number.
func LineRange(line int) Range {
	return Range{StartLine: line, StartCol: 1, EndLine: line, EndCol: 1}
}

// DecorationOptions carries the visual directives for one decoration.
// Class names reference the style families in internal/style; empty
// fields mean the corresponding feature is disabled for this decoration.
type DecorationOptions struct {
	// IsWholeLine marks the decoration as spanning the full line.
	IsWholeLine bool

	// ClassName is the whole-line highlight class.
	ClassName string

	// InlineClassName styles the trailing inline message.
	InlineClassName string

	// InlineContent is the trailing message text.
	InlineContent string

	// GutterClassName selects the gutter severity icon.
	GutterClassName string

	// HoverText is the hover summary for every marker on the line.
	HoverText string

	// Stickiness controls range behavior on edits.
	Stickiness Stickiness
}

// Decoration is one ephemeral visual directive. Decorations are
// recomputed from scratch every update cycle; none outlives a cycle.
type Decoration struct {
	Range   Range
	Options DecorationOptions
}

// Editor is the consumed host-editor capability surface.
//
// Queries return an ok flag instead of erroring: a host without a bound
// document or without the marker-query capability is "not ready", and
// the caller stays inert rather than failing.
type Editor interface {
	// Document returns the bound document, if any.
	Document() (DocumentID, bool)

	// CursorLine returns the current 1-based cursor line, if available.
	CursorLine() (int, bool)

	// QueryMarkers returns a fresh snapshot of all current diagnostic
	// markers for the bound document. ok is false when the capability
	// is absent.
	QueryMarkers() ([]diag.Marker, bool)

	// OnMarkersChanged registers a listener for marker updates on the
	// bound document.
	OnMarkersChanged(fn func()) Unsubscribe

	// OnCursorMoved registers a listener for cursor movement.
	OnCursorMoved(fn func(line int)) Unsubscribe

	// OnBufferSwapped registers a listener for the bound document being
	// replaced.
	OnBufferSwapped(fn func()) Unsubscribe

	// ReplaceDecorations atomically swaps a previous decoration batch
	// for a new one and returns the fresh handles. The old handles are
	// invalid after the call. Passing an empty batch clears.
	ReplaceDecorations(old []HandleID, decorations []Decoration) []HandleID

	// InjectStyleText installs default style rules. Hosts may ignore
	// it; callers must treat repeat injection as their own concern.
	InjectStyleText(text string)
}
