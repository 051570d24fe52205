package diag

import "strings"

// ellipsis terminates truncated messages.
const ellipsis = "..."

// ExpandTemplate substitutes marker fields into a message template.
// Recognized tokens are {message}, {source}, and {code}; absent fields
// substitute as empty strings. An empty template yields the raw message.
func ExpandTemplate(tmpl string, m Marker) string {
	if tmpl == "" {
		return m.Message
	}

	r := strings.NewReplacer(
		"{message}", m.Message,
		"{source}", m.Source,
		"{code}", m.Code,
	)
	return r.Replace(tmpl)
}

// TruncateMessage shortens a message to at most max runes, replacing the
// tail with "..." when it is cut. Messages at or under the limit are
// returned unchanged. A non-positive max disables truncation. For limits
// too small to hold the ellipsis the message is simply cut to max runes.
func TruncateMessage(s string, max int) string {
	if max <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= len(ellipsis) {
		return string(runes[:max])
	}
	return string(runes[:max-len(ellipsis)]) + ellipsis
}

// FormatMarker renders one marker as a hover summary line:
// **Label** [source]: message. The source segment is omitted when the
// marker has no source, and a code is appended in parentheses.
func FormatMarker(m Marker) string {
	var sb strings.Builder

	sb.WriteString("**")
	sb.WriteString(m.Severity.Label())
	sb.WriteString("**")

	if m.Source != "" {
		sb.WriteString(" [")
		sb.WriteString(m.Source)
		sb.WriteString("]")
	}

	sb.WriteString(": ")
	sb.WriteString(m.Message)

	if m.Code != "" {
		sb.WriteString(" (")
		sb.WriteString(m.Code)
		sb.WriteString(")")
	}

	return sb.String()
}
