// Package decor builds visual decorations from filtered line groups.
//
// Exactly one decoration is emitted per line that has at least one
// surviving marker. Construction is failure-isolated: a line that
// cannot be built is skipped and reported, never aborting the batch.
package decor

import (
	"fmt"

	"github.com/dshills/glint/internal/config"
	"github.com/dshills/glint/internal/diag"
	"github.com/dshills/glint/internal/host"
	"github.com/dshills/glint/internal/style"
)

// LineError reports a single line whose decoration could not be built.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("building decoration for line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Build creates one decoration per line group. Failed lines are
// returned separately so the caller can report them on its error
// channel while the rest of the batch proceeds.
func Build(groups []diag.LineGroup, cfg config.Config) ([]host.Decoration, []*LineError) {
	if len(groups) == 0 {
		return nil, nil
	}

	decorations := make([]host.Decoration, 0, len(groups))
	var failed []*LineError

	for _, group := range groups {
		dec, err := buildLine(group, cfg)
		if err != nil {
			failed = append(failed, &LineError{Line: group.Line, Err: err})
			continue
		}
		decorations = append(decorations, dec)
	}

	return decorations, failed
}

// buildLine constructs the decoration for one line group. A panic from
// malformed data is recovered into the returned error.
func buildLine(group diag.LineGroup, cfg config.Config) (dec host.Decoration, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoration construction panicked: %v", r)
		}
	}()

	if len(group.Markers) == 0 {
		return host.Decoration{}, fmt.Errorf("empty line group")
	}

	// The display list is severity-sorted, so the primary marker is
	// the line's highest-severity one.
	primary := group.Markers[0]

	opts := host.DecorationOptions{
		IsWholeLine: true,
		HoverText:   hoverText(group.All),
		Stickiness:  host.StickinessNeverGrows,
	}

	if cfg.ShowLineHighlights {
		opts.ClassName = style.HighlightClass(primary.Severity)
	}

	if cfg.ShowInlineMessages {
		content := diag.ExpandTemplate(cfg.MessageTemplate, primary)
		opts.InlineContent = diag.TruncateMessage(content, cfg.MaxMessageLength)
		opts.InlineClassName = style.InlineClass(primary.Severity)
	}

	if cfg.ShowGutterIcons {
		opts.GutterClassName = style.GutterClass(primary.Severity)
	}

	return host.Decoration{
		Range:   host.LineRange(group.Line),
		Options: opts,
	}, nil
}

// hoverText renders the hover summary for a line. A single marker gets
// one formatted line; multiple markers are each formatted and joined by
// blank lines in severity order. The summary always covers the full
// line set, not just the capped display list.
func hoverText(markers []diag.Marker) string {
	if len(markers) == 0 {
		return ""
	}
	if len(markers) == 1 {
		return diag.FormatMarker(markers[0])
	}

	out := ""
	for i, m := range markers {
		if i > 0 {
			out += "\n\n"
		}
		out += diag.FormatMarker(m)
	}
	return out
}
