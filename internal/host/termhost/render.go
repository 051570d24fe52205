package termhost

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/glint/internal/diag"
	"github.com/dshills/glint/internal/host"
	"github.com/dshills/glint/internal/style"
)

// signColumnWidth is the width of the gutter icon column.
const signColumnWidth = 2

// minLineNumberWidth is the minimum width of the line number column.
const minLineNumberWidth = 3

// renderLocked draws the full frame. Caller holds the mutex.
func (h *Host) renderLocked() {
	h.screen.Clear()

	width, height := h.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	decorated := make(map[int]*decorationView, len(h.decorations))
	for i := range h.decorations {
		dec := &h.decorations[i]
		decorated[dec.Range.StartLine] = h.viewFor(dec)
	}

	numWidth := lineNumberWidth(len(h.lines))
	gutterWidth := signColumnWidth + numWidth + 1
	visible := height - 1

	for row := 0; row < visible; row++ {
		line := h.topLine + row
		if line > len(h.lines) {
			break
		}
		h.drawLine(row, line, h.lines[line-1], numWidth, gutterWidth, width, decorated[line])
	}

	h.drawStatus(height-1, width, decorated[h.cursorLine])
	h.screen.Show()
}

// decorationView is a decoration resolved against the theme.
type decorationView struct {
	highlight  tcell.Style
	hasHL      bool
	inline     string
	inlineSty  tcell.Style
	gutterRune rune
	gutterSty  tcell.Style
	hover      string
}

// viewFor resolves a decoration's class names into concrete terminal
// styles. Empty class fields stay unset, mirroring the feature toggles.
func (h *Host) viewFor(dec *host.Decoration) *decorationView {
	v := &decorationView{hover: dec.Options.HoverText}

	if dec.Options.ClassName != "" {
		sev := classSeverity(dec.Options.ClassName)
		v.highlight = tcell.StyleDefault.Background(h.themeColor(sev, true))
		v.hasHL = true
	}
	if dec.Options.InlineContent != "" {
		sev := classSeverity(dec.Options.InlineClassName)
		v.inline = dec.Options.InlineContent
		v.inlineSty = tcell.StyleDefault.Foreground(h.themeColor(sev, false)).Italic(true)
	}
	if dec.Options.GutterClassName != "" {
		sev := classSeverity(dec.Options.GutterClassName)
		v.gutterRune = sev.Icon()
		v.gutterSty = tcell.StyleDefault.Foreground(h.themeColor(sev, false)).Bold(true)
	}
	return v
}

func (h *Host) drawLine(row, line int, text string, numWidth, gutterWidth, width int, view *decorationView) {
	base := tcell.StyleDefault
	if view != nil && view.hasHL {
		base = view.highlight
	}

	// Gutter: sign column then right-aligned line number.
	x := 0
	if view != nil && view.gutterRune != 0 {
		h.screen.SetContent(x, row, view.gutterRune, nil, view.gutterSty)
	}
	x = signColumnWidth

	num := strconv.Itoa(line)
	numStyle := tcell.StyleDefault.Dim(true)
	if line == h.cursorLine {
		numStyle = tcell.StyleDefault.Bold(true)
	}
	x = h.drawText(x+numWidth-len(num), row, num, numStyle, width)
	x = gutterWidth

	// Whole-line highlight paints the full text area.
	if view != nil && view.hasHL {
		for fx := x; fx < width; fx++ {
			h.screen.SetContent(fx, row, ' ', nil, base)
		}
	}

	x = h.drawText(x, row, text, base, width)

	if view != nil && view.inline != "" {
		x = h.drawText(x, row, "  ", base, width)
		h.drawText(x, row, view.inline, view.inlineSty, width)
	}
}

// drawStatus renders the bottom bar: position on the left, the cursor
// line's hover summary on the right of it.
func (h *Host) drawStatus(row, width int, view *decorationView) {
	sty := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		h.screen.SetContent(x, row, ' ', nil, sty)
	}

	pos := " " + string(h.docID) + "  " + strconv.Itoa(h.cursorLine) + ":" + strconv.Itoa(len(h.lines))
	x := h.drawText(0, row, pos, sty, width)

	if view != nil && view.hover != "" {
		summary := strings.SplitN(view.hover, "\n", 2)[0]
		h.drawText(x+2, row, summary, sty.Dim(true), width)
	}

	// Marker tally on the right edge, colored by the worst severity.
	counts := diag.Count(h.markers)
	if counts.Total() == 0 {
		return
	}
	tally := countTally(counts)
	tallySty := sty.Foreground(h.themeColor(diag.MaxSeverity(h.markers), false))
	h.drawText(width-runewidth.StringWidth(tally)-1, row, tally, tallySty, width)
}

// countTally formats severity counts as "2E 1W 3I 1H", omitting zeros.
func countTally(c diag.Counts) string {
	var parts []string
	if c.Errors > 0 {
		parts = append(parts, strconv.Itoa(c.Errors)+"E")
	}
	if c.Warnings > 0 {
		parts = append(parts, strconv.Itoa(c.Warnings)+"W")
	}
	if c.Infos > 0 {
		parts = append(parts, strconv.Itoa(c.Infos)+"I")
	}
	if c.Hints > 0 {
		parts = append(parts, strconv.Itoa(c.Hints)+"H")
	}
	return strings.Join(parts, " ")
}

// drawText draws a string starting at x and returns the next free
// column, accounting for wide runes.
func (h *Host) drawText(x, row int, text string, sty tcell.Style, width int) int {
	for _, r := range text {
		if x >= width {
			break
		}
		h.screen.SetContent(x, row, r, nil, sty)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// themeColor resolves a severity channel to a tcell color, falling back
// to the terminal default for malformed hex.
func (h *Host) themeColor(sev diag.Severity, background bool) tcell.Color {
	pair := h.theme.Pair(sev)
	hex := pair.Foreground
	if background {
		hex = pair.Background
	}
	c, ok := style.ParseColor(hex)
	if !ok {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// classSeverity recovers the severity from a decoration class name by
// its suffix. Unknown suffixes fall back to the hint rank.
func classSeverity(class string) diag.Severity {
	idx := strings.LastIndex(class, "-")
	if idx < 0 || idx+1 >= len(class) {
		return diag.SeverityHint
	}
	sev, ok := diag.ParseSeverity(class[idx+1:])
	if !ok {
		return diag.SeverityHint
	}
	return sev
}

// lineNumberWidth returns the digit width for a buffer size.
func lineNumberWidth(lineCount int) int {
	width := len(strconv.Itoa(lineCount))
	if width < minLineNumberWidth {
		width = minLineNumberWidth
	}
	return width
}
