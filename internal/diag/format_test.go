package diag

import (
	"strings"
	"testing"
)

func TestExpandTemplate(t *testing.T) {
	m := Marker{Message: "unused variable", Source: "lint", Code: "U100"}

	cases := []struct {
		tmpl string
		want string
	}{
		{"{message}", "unused variable"},
		{"[{source}] {message}", "[lint] unused variable"},
		{"{message} ({code})", "unused variable (U100)"},
		{"", "unused variable"},
		{"static text", "static text"},
	}

	for _, tc := range cases {
		if got := ExpandTemplate(tc.tmpl, m); got != tc.want {
			t.Errorf("ExpandTemplate(%q) = %q, want %q", tc.tmpl, got, tc.want)
		}
	}
}

func TestExpandTemplateMissingFields(t *testing.T) {
	m := Marker{Message: "oops"}
	if got := ExpandTemplate("{message} [{source}] {code}", m); got != "oops [] " {
		t.Errorf("absent fields should render empty, got %q", got)
	}
}

func TestTruncateMessage(t *testing.T) {
	long := strings.Repeat("x", 50)

	got := TruncateMessage(long, 20)
	if len(got) != 20 {
		t.Errorf("truncated length = %d, want 20", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated message should end with ellipsis: %q", got)
	}

	short := "fits"
	if got := TruncateMessage(short, 20); got != short {
		t.Errorf("message under limit should be unchanged, got %q", got)
	}

	exact := strings.Repeat("y", 20)
	if got := TruncateMessage(exact, 20); got != exact {
		t.Errorf("message at limit should be unchanged, got %q", got)
	}
}

func TestTruncateMessageEdgeCases(t *testing.T) {
	if got := TruncateMessage("anything", 0); got != "anything" {
		t.Errorf("non-positive max should disable truncation, got %q", got)
	}
	if got := TruncateMessage("abcdef", 2); got != "ab" {
		t.Errorf("max below ellipsis width should hard-cut, got %q", got)
	}
	// Rune-safe: multibyte input must not be split mid-rune.
	if got := TruncateMessage("héllo wörld étc", 8); len([]rune(got)) != 8 {
		t.Errorf("expected 8 runes, got %q", got)
	}
}

func TestFormatMarker(t *testing.T) {
	m := Marker{Message: "bad call", Severity: SeverityError, Source: "vet", Code: "E42"}
	if got := FormatMarker(m); got != "**Error** [vet]: bad call (E42)" {
		t.Errorf("unexpected format: %q", got)
	}
}

func TestFormatMarkerNoSource(t *testing.T) {
	m := Marker{Message: "heads up", Severity: SeverityWarning}
	if got := FormatMarker(m); got != "**Warning**: heads up" {
		t.Errorf("source segment should be omitted: %q", got)
	}
}

func TestFormatMarkerUnknownSeverity(t *testing.T) {
	m := Marker{Message: "odd"}
	if got := FormatMarker(m); !strings.HasPrefix(got, "**Unknown**") {
		t.Errorf("zero severity should label Unknown: %q", got)
	}
}
