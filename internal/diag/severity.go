package diag

import "strings"

// Severity represents the rank of a diagnostic marker.
// Values are ascending powers of two so a set of severities can be
// encoded as a bitmask: hint < info < warning < error.
type Severity uint8

const (
	// SeverityHint is the lowest rank, used for editor hints.
	SeverityHint Severity = 1 << iota

	// SeverityInfo reports informational diagnostics.
	SeverityInfo

	// SeverityWarning reports warnings.
	SeverityWarning

	// SeverityError is the highest rank.
	SeverityError
)

// Label returns a human-readable severity name.
func (s Severity) Label() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	case SeverityInfo:
		return "Info"
	case SeverityHint:
		return "Hint"
	default:
		return "Unknown"
	}
}

// ClassSuffix returns the style class suffix for the severity.
// Unrecognized values map to "unknown" rather than failing.
func (s Severity) ClassSuffix() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Icon returns a single-character glyph for the severity.
func (s Severity) Icon() rune {
	switch s {
	case SeverityError:
		return 'E'
	case SeverityWarning:
		return 'W'
	case SeverityInfo:
		return 'I'
	case SeverityHint:
		return 'H'
	default:
		return '?'
	}
}

// IsValid returns true if the severity is one of the defined ranks.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityHint, SeverityInfo, SeverityWarning, SeverityError:
		return true
	default:
		return false
	}
}

// ParseSeverity converts a severity name to its value.
// Matching is case-insensitive; "information" is accepted as an alias
// for info.
func ParseSeverity(name string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return SeverityError, true
	case "warning", "warn":
		return SeverityWarning, true
	case "info", "information":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	default:
		return 0, false
	}
}

// Severities lists all defined severities in descending rank order.
func Severities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeverityInfo, SeverityHint}
}

// Set is a severity allow-list encoded as a bitmask.
type Set uint8

// AllSeverities is the set containing every defined severity.
const AllSeverities = Set(SeverityHint | SeverityInfo | SeverityWarning | SeverityError)

// NewSet builds a set from individual severities.
func NewSet(sevs ...Severity) Set {
	var s Set
	for _, sev := range sevs {
		s |= Set(sev)
	}
	return s
}

// Has returns true if the severity is in the set.
func (s Set) Has(sev Severity) bool {
	return s&Set(sev) != 0
}

// With returns a copy of the set with the severity added.
func (s Set) With(sev Severity) Set {
	return s | Set(sev)
}

// Without returns a copy of the set with the severity removed.
func (s Set) Without(sev Severity) Set {
	return s &^ Set(sev)
}

// IsEmpty returns true if no severity is in the set.
func (s Set) IsEmpty() bool {
	return s == 0
}

// Members returns the severities in the set in descending rank order.
func (s Set) Members() []Severity {
	var out []Severity
	for _, sev := range Severities() {
		if s.Has(sev) {
			out = append(out, sev)
		}
	}
	return out
}
