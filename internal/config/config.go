// Package config holds the decoration engine's configuration value
// object, its defaults, and the merge semantics for partial overrides.
//
// A Config is constructed once and replaced wholesale (via merge) on
// each update; overrides merge shallowly except the color map, which
// merges per-severity-per-channel. Malformed override values (unknown
// severity names, unparsable colors) are tolerated and skipped rather
// than rejected.
package config

import (
	"time"

	"github.com/dshills/glint/internal/diag"
	"github.com/dshills/glint/internal/style"
)

// FollowMode selects which lines receive decorations.
type FollowMode string

const (
	// FollowAllLines decorates every line with surviving markers.
	FollowAllLines FollowMode = "allLines"

	// FollowActiveLine decorates only the line containing the cursor.
	FollowActiveLine FollowMode = "activeLine"
)

// IsValid returns true for a recognized follow mode.
func (m FollowMode) IsValid() bool {
	return m == FollowAllLines || m == FollowActiveLine
}

// Config is the complete decoration engine configuration.
type Config struct {
	// Enabled is the global on/off flag.
	Enabled bool

	// ShowInlineMessages enables trailing inline messages.
	ShowInlineMessages bool

	// ShowLineHighlights enables whole-line background highlights.
	ShowLineHighlights bool

	// ShowGutterIcons enables gutter severity icons.
	ShowGutterIcons bool

	// MessageTemplate formats the inline message; {message}, {source},
	// and {code} are substituted from the primary marker.
	MessageTemplate string

	// FollowCursor selects all-lines or active-line-only decoration.
	FollowCursor FollowMode

	// MaxMessageLength bounds the inline message in runes.
	MaxMessageLength int

	// MaxMarkersPerLine caps each line's displayed marker list.
	MaxMarkersPerLine int

	// Severities is the severity allow-list.
	Severities diag.Set

	// Colors maps severities to background/foreground pairs.
	Colors style.Theme

	// UpdateDelay is the recomputation debounce quiet period.
	UpdateDelay time.Duration
}

// Default returns the fully specified default configuration.
func Default() Config {
	return Config{
		Enabled:            true,
		ShowInlineMessages: true,
		ShowLineHighlights: true,
		ShowGutterIcons:    true,
		MessageTemplate:    "{message}",
		FollowCursor:       FollowAllLines,
		MaxMessageLength:   120,
		MaxMarkersPerLine:  3,
		Severities:         diag.AllSeverities,
		Colors:             style.DefaultTheme(),
		UpdateDelay:        100 * time.Millisecond,
	}
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	out := c
	out.Colors = c.Colors.Clone()
	return out
}

// ColorOverride is a partial color pair keyed by channel.
type ColorOverride struct {
	Background *string `toml:"background"`
	Foreground *string `toml:"foreground"`
}

// Overrides is a partial configuration. Nil fields leave the current
// value unchanged.
type Overrides struct {
	Enabled            *bool                    `toml:"enabled"`
	ShowInlineMessages *bool                    `toml:"show_inline_messages"`
	ShowLineHighlights *bool                    `toml:"show_line_highlights"`
	ShowGutterIcons    *bool                    `toml:"show_gutter_icons"`
	MessageTemplate    *string                  `toml:"message_template"`
	FollowCursor       *string                  `toml:"follow_cursor"`
	MaxMessageLength   *int                     `toml:"max_message_length"`
	MaxMarkersPerLine  *int                     `toml:"max_markers_per_line"`
	Severities         *[]string                `toml:"severities"`
	Colors             map[string]ColorOverride `toml:"colors"`
	UpdateDelayMS      *int                     `toml:"update_delay_ms"`
}

// Merge applies overrides to the configuration and returns the result.
// The receiver is not modified. Unknown severity names, invalid follow
// modes, and unparsable colors are skipped best-effort.
func (c Config) Merge(ov Overrides) Config {
	out := c.Clone()

	if ov.Enabled != nil {
		out.Enabled = *ov.Enabled
	}
	if ov.ShowInlineMessages != nil {
		out.ShowInlineMessages = *ov.ShowInlineMessages
	}
	if ov.ShowLineHighlights != nil {
		out.ShowLineHighlights = *ov.ShowLineHighlights
	}
	if ov.ShowGutterIcons != nil {
		out.ShowGutterIcons = *ov.ShowGutterIcons
	}
	if ov.MessageTemplate != nil {
		out.MessageTemplate = *ov.MessageTemplate
	}
	if ov.FollowCursor != nil {
		if mode := FollowMode(*ov.FollowCursor); mode.IsValid() {
			out.FollowCursor = mode
		}
	}
	if ov.MaxMessageLength != nil {
		out.MaxMessageLength = *ov.MaxMessageLength
	}
	if ov.MaxMarkersPerLine != nil {
		out.MaxMarkersPerLine = *ov.MaxMarkersPerLine
	}
	if ov.Severities != nil {
		var set diag.Set
		for _, name := range *ov.Severities {
			if sev, ok := diag.ParseSeverity(name); ok {
				set = set.With(sev)
			}
		}
		out.Severities = set
	}
	if len(ov.Colors) > 0 {
		out.Colors = out.Colors.Merge(colorOverrides(ov.Colors))
	}
	if ov.UpdateDelayMS != nil && *ov.UpdateDelayMS >= 0 {
		out.UpdateDelay = time.Duration(*ov.UpdateDelayMS) * time.Millisecond
	}

	return out
}

// colorOverrides converts named color overrides into theme overrides,
// dropping unknown severities and unparsable channels.
func colorOverrides(colors map[string]ColorOverride) map[diag.Severity]style.PairOverride {
	out := make(map[diag.Severity]style.PairOverride, len(colors))
	for name, ov := range colors {
		sev, ok := diag.ParseSeverity(name)
		if !ok {
			continue
		}

		var pair style.PairOverride
		if ov.Background != nil {
			if _, ok := style.ParseColor(*ov.Background); ok {
				pair.Background = ov.Background
			}
		}
		if ov.Foreground != nil {
			if _, ok := style.ParseColor(*ov.Foreground); ok {
				pair.Foreground = ov.Foreground
			}
		}
		if pair.Background != nil || pair.Foreground != nil {
			out[sev] = pair
		}
	}
	return out
}
