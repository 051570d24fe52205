// Package termhost implements the host editor contract on a tcell
// terminal screen.
//
// It is a deliberately small viewer, not an editor: it loads a read-only
// buffer, carries a cursor, holds marker snapshots, and renders whatever
// decoration batch it was last handed. It exists so the decoration
// pipeline can run end to end against a real screen.
package termhost

import (
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/dshills/glint/internal/diag"
	"github.com/dshills/glint/internal/host"
	"github.com/dshills/glint/internal/style"
)

// Host implements host.Editor using tcell for terminal output.
type Host struct {
	mu     sync.Mutex
	screen tcell.Screen

	docID  host.DocumentID
	hasDoc bool
	lines  []string

	cursorLine int
	topLine    int

	markers []diag.Marker

	decorations []host.Decoration
	issued      []host.HandleID
	handleSeq   int

	markerListeners map[string]func()
	cursorListeners map[string]func(int)
	bufferListeners map[string]func()

	theme     style.Theme
	styleText string
}

// Option configures a Host at construction.
type Option func(*Host)

// WithTheme sets the color theme used to resolve decoration classes.
func WithTheme(t style.Theme) Option {
	return func(h *Host) { h.theme = t.Clone() }
}

// New creates a Host with a fresh terminal screen.
func New(opts ...Option) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, opts...), nil
}

// NewWithScreen creates a Host on an existing screen. Tests use this
// with a tcell simulation screen.
func NewWithScreen(screen tcell.Screen, opts ...Option) *Host {
	h := &Host{
		screen:          screen,
		topLine:         1,
		cursorLine:      1,
		theme:           style.DefaultTheme(),
		markerListeners: make(map[string]func()),
		cursorListeners: make(map[string]func(int)),
		bufferListeners: make(map[string]func()),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Init initializes the screen and draws the first frame.
func (h *Host) Init() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.screen.Init(); err != nil {
		return err
	}
	h.renderLocked()
	return nil
}

// Fini restores the terminal.
func (h *Host) Fini() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.screen.Fini()
}

// OpenDocument replaces the buffer and notifies buffer listeners. The
// cursor resets to the first line.
func (h *Host) OpenDocument(id host.DocumentID, lines []string) {
	h.mu.Lock()
	h.docID = id
	h.hasDoc = true
	h.lines = lines
	h.cursorLine = 1
	h.topLine = 1
	listeners := snapshot(h.bufferListeners)
	h.renderLocked()
	h.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// SetMarkers replaces the marker snapshot and notifies marker listeners.
func (h *Host) SetMarkers(markers []diag.Marker) {
	h.mu.Lock()
	h.markers = markers
	listeners := snapshot(h.markerListeners)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// MoveCursor clamps the target to the buffer, scrolls it into view, and
// notifies cursor listeners when the line changed.
func (h *Host) MoveCursor(line int) {
	h.mu.Lock()
	if line < 1 {
		line = 1
	}
	if n := len(h.lines); n > 0 && line > n {
		line = n
	}
	moved := line != h.cursorLine
	h.cursorLine = line
	h.scrollIntoViewLocked()
	listeners := snapshot(h.cursorListeners)
	h.renderLocked()
	h.mu.Unlock()

	if !moved {
		return
	}
	for _, fn := range listeners {
		fn(line)
	}
}

// CursorDelta moves the cursor by a line offset.
func (h *Host) CursorDelta(delta int) {
	h.mu.Lock()
	target := h.cursorLine + delta
	h.mu.Unlock()
	h.MoveCursor(target)
}

// Document implements host.Editor.
func (h *Host) Document() (host.DocumentID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.docID, h.hasDoc
}

// CursorLine implements host.Editor.
func (h *Host) CursorLine() (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.hasDoc {
		return 0, false
	}
	return h.cursorLine, true
}

// QueryMarkers implements host.Editor.
func (h *Host) QueryMarkers() ([]diag.Marker, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]diag.Marker, len(h.markers))
	copy(out, h.markers)
	return out, true
}

// OnMarkersChanged implements host.Editor.
func (h *Host) OnMarkersChanged(fn func()) host.Unsubscribe {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.NewString()
	h.markerListeners[id] = fn
	return h.remover(func() { delete(h.markerListeners, id) })
}

// OnCursorMoved implements host.Editor.
func (h *Host) OnCursorMoved(fn func(int)) host.Unsubscribe {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.NewString()
	h.cursorListeners[id] = fn
	return h.remover(func() { delete(h.cursorListeners, id) })
}

// OnBufferSwapped implements host.Editor.
func (h *Host) OnBufferSwapped(fn func()) host.Unsubscribe {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.NewString()
	h.bufferListeners[id] = fn
	return h.remover(func() { delete(h.bufferListeners, id) })
}

// ReplaceDecorations implements host.Editor. Handles are sequence
// numbers; the previous batch is discarded wholesale, so the old
// handles are only checked for staleness by callers, not here.
func (h *Host) ReplaceDecorations(_ []host.HandleID, decorations []host.Decoration) []host.HandleID {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.decorations = make([]host.Decoration, len(decorations))
	copy(h.decorations, decorations)

	h.issued = make([]host.HandleID, len(decorations))
	for i := range decorations {
		h.handleSeq++
		h.issued[i] = host.HandleID("term-" + strconv.Itoa(h.handleSeq))
	}
	h.renderLocked()

	out := make([]host.HandleID, len(h.issued))
	copy(out, h.issued)
	return out
}

// InjectStyleText implements host.Editor. The terminal resolves colors
// from its theme directly; the rule text is kept for inspection.
func (h *Host) InjectStyleText(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.styleText = text
}

// StyleText returns the last injected style rule text.
func (h *Host) StyleText() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.styleText
}

// Render draws the current frame.
func (h *Host) Render() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renderLocked()
}

// Run polls screen events until onKey returns false. Arrow and paging
// keys move the cursor; resize redraws; everything else is forwarded.
func (h *Host) Run(onKey func(ev *tcell.EventKey) bool) {
	for {
		ev := h.screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			h.screen.Sync()
			h.Render()

		case *tcell.EventKey:
			switch e.Key() {
			case tcell.KeyUp:
				h.CursorDelta(-1)
			case tcell.KeyDown:
				h.CursorDelta(1)
			case tcell.KeyPgUp:
				h.CursorDelta(-h.pageSize())
			case tcell.KeyPgDn:
				h.CursorDelta(h.pageSize())
			case tcell.KeyHome:
				h.MoveCursor(1)
			case tcell.KeyEnd:
				h.MoveCursor(h.lineCount())
			default:
				if !onKey(e) {
					return
				}
			}

		case nil:
			// Screen finalized.
			return
		}
	}
}

func (h *Host) lineCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.lines)
}

func (h *Host) pageSize() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, height := h.screen.Size()
	if height <= 1 {
		return 1
	}
	return height - 1
}

func (h *Host) scrollIntoViewLocked() {
	_, height := h.screen.Size()
	visible := height - 1 // status line
	if visible < 1 {
		visible = 1
	}
	if h.cursorLine < h.topLine {
		h.topLine = h.cursorLine
	}
	if h.cursorLine >= h.topLine+visible {
		h.topLine = h.cursorLine - visible + 1
	}
}

// remover wraps a registry delete in a once-guarded Unsubscribe.
func (h *Host) remover(remove func()) host.Unsubscribe {
	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			remove()
		})
	}
}

func snapshot[T any](m map[string]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
