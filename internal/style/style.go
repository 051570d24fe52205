// Package style defines the presentation surface of the decoration
// engine: the named class families assigned to decorations (one family
// per severity and visual feature) and the per-severity color theme the
// host resolves those classes against.
//
// The engine only assigns class names; it never computes pixel-level
// style. The default style text exists so a host can inject a baseline
// rule set once and render the classes without its own theme.
package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/glint/internal/diag"
)

// classPrefix namespaces every class the engine assigns.
const classPrefix = "glint"

// HighlightClass returns the whole-line highlight class for a severity.
func HighlightClass(sev diag.Severity) string {
	return classPrefix + "-highlight-" + sev.ClassSuffix()
}

// InlineClass returns the trailing inline-message class for a severity.
func InlineClass(sev diag.Severity) string {
	return classPrefix + "-inline-" + sev.ClassSuffix()
}

// GutterClass returns the gutter icon class for a severity.
func GutterClass(sev diag.Severity) string {
	return classPrefix + "-gutter-" + sev.ClassSuffix()
}

// ColorPair holds the background and foreground for one severity as
// "#rrggbb" hex strings.
type ColorPair struct {
	Background string
	Foreground string
}

// PairOverride is a partial ColorPair. Nil channels are left unchanged
// by a merge.
type PairOverride struct {
	Background *string
	Foreground *string
}

// Theme maps severities to their color pairs.
type Theme map[diag.Severity]ColorPair

// DefaultTheme returns the built-in severity colors.
func DefaultTheme() Theme {
	return Theme{
		diag.SeverityError:   {Background: "#5a1d1d", Foreground: "#ff5050"},
		diag.SeverityWarning: {Background: "#5a4a1d", Foreground: "#ffc850"},
		diag.SeverityInfo:    {Background: "#1d3a5a", Foreground: "#64a0ff"},
		diag.SeverityHint:    {Background: "#2a2a2a", Foreground: "#969696"},
	}
}

// Clone returns a deep copy of the theme.
func (t Theme) Clone() Theme {
	out := make(Theme, len(t))
	for sev, pair := range t {
		out[sev] = pair
	}
	return out
}

// Merge applies per-severity-per-channel overrides and returns a new
// theme. The receiver is not modified. Overrides for severities absent
// from the receiver create new pairs.
func (t Theme) Merge(overrides map[diag.Severity]PairOverride) Theme {
	out := t.Clone()
	for sev, ov := range overrides {
		pair := out[sev]
		if ov.Background != nil {
			pair.Background = *ov.Background
		}
		if ov.Foreground != nil {
			pair.Foreground = *ov.Foreground
		}
		out[sev] = pair
	}
	return out
}

// Pair returns the color pair for a severity, falling back to the hint
// pair for unrecognized severities.
func (t Theme) Pair(sev diag.Severity) ColorPair {
	if pair, ok := t[sev]; ok {
		return pair
	}
	return t[diag.SeverityHint]
}

// ParseColor parses a "#rrggbb" hex color. The ok result is false for
// malformed input, letting callers fall back rather than fail.
func ParseColor(hex string) (colorful.Color, bool) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// ValidPair reports whether both channels of a pair parse as colors.
// Empty channels are considered valid (they mean "host default").
func ValidPair(p ColorPair) bool {
	if p.Background != "" {
		if _, ok := ParseColor(p.Background); !ok {
			return false
		}
	}
	if p.Foreground != "" {
		if _, ok := ParseColor(p.Foreground); !ok {
			return false
		}
	}
	return true
}

// Text renders the theme as the default style rule text a host may
// inject once. One rule per class, severities in descending rank order.
func (t Theme) Text() string {
	sevs := make([]diag.Severity, 0, len(t))
	for sev := range t {
		sevs = append(sevs, sev)
	}
	sort.Slice(sevs, func(i, j int) bool { return sevs[i] > sevs[j] })

	var sb strings.Builder
	for _, sev := range sevs {
		pair := t[sev]
		fmt.Fprintf(&sb, ".%s { background: %s; }\n", HighlightClass(sev), pair.Background)
		fmt.Fprintf(&sb, ".%s { color: %s; }\n", InlineClass(sev), pair.Foreground)
		fmt.Fprintf(&sb, ".%s { color: %s; }\n", GutterClass(sev), pair.Foreground)
	}
	return sb.String()
}
