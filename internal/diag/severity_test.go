package diag

import "testing"

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityHint < SeverityInfo && SeverityInfo < SeverityWarning && SeverityWarning < SeverityError) {
		t.Error("severities should be ordered hint < info < warning < error")
	}
	if SeverityHint != 1 || SeverityInfo != 2 || SeverityWarning != 4 || SeverityError != 8 {
		t.Errorf("unexpected severity encoding: %d %d %d %d",
			SeverityHint, SeverityInfo, SeverityWarning, SeverityError)
	}
}

func TestSeverityLabel(t *testing.T) {
	cases := []struct {
		sev  Severity
		want string
	}{
		{SeverityError, "Error"},
		{SeverityWarning, "Warning"},
		{SeverityInfo, "Info"},
		{SeverityHint, "Hint"},
		{Severity(0), "Unknown"},
		{Severity(3), "Unknown"},
	}

	for _, tc := range cases {
		if got := tc.sev.Label(); got != tc.want {
			t.Errorf("Label(%d) = %q, want %q", tc.sev, got, tc.want)
		}
	}
}

func TestSeverityClassSuffix(t *testing.T) {
	cases := []struct {
		sev  Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{SeverityHint, "hint"},
		{Severity(0), "unknown"},
	}

	for _, tc := range cases {
		if got := tc.sev.ClassSuffix(); got != tc.want {
			t.Errorf("ClassSuffix(%d) = %q, want %q", tc.sev, got, tc.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	cases := []struct {
		name string
		want Severity
		ok   bool
	}{
		{"error", SeverityError, true},
		{"Error", SeverityError, true},
		{"WARNING", SeverityWarning, true},
		{"warn", SeverityWarning, true},
		{"info", SeverityInfo, true},
		{"information", SeverityInfo, true},
		{" hint ", SeverityHint, true},
		{"critical", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseSeverity(tc.name)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseSeverity(%q) = (%d, %v), want (%d, %v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSetMembership(t *testing.T) {
	s := NewSet(SeverityError, SeverityWarning)

	if !s.Has(SeverityError) || !s.Has(SeverityWarning) {
		t.Error("set should contain error and warning")
	}
	if s.Has(SeverityInfo) || s.Has(SeverityHint) {
		t.Error("set should not contain info or hint")
	}

	s = s.With(SeverityHint)
	if !s.Has(SeverityHint) {
		t.Error("With should add hint")
	}

	s = s.Without(SeverityError)
	if s.Has(SeverityError) {
		t.Error("Without should remove error")
	}
}

func TestAllSeverities(t *testing.T) {
	for _, sev := range Severities() {
		if !AllSeverities.Has(sev) {
			t.Errorf("AllSeverities should contain %s", sev.Label())
		}
	}
}

func TestSetMembers(t *testing.T) {
	members := NewSet(SeverityHint, SeverityError).Members()
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	// Descending rank order.
	if members[0] != SeverityError || members[1] != SeverityHint {
		t.Errorf("unexpected member order: %v", members)
	}
}

func TestEmptySet(t *testing.T) {
	var s Set
	if !s.IsEmpty() {
		t.Error("zero set should be empty")
	}
	if AllSeverities.IsEmpty() {
		t.Error("AllSeverities should not be empty")
	}
}
