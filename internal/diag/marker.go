package diag

// Marker is one diagnostic record supplied by the host editor.
// Lines and columns are 1-based. A marker missing optional fields is
// still renderable; absent fields format as empty strings.
type Marker struct {
	// StartLine is the first line of the marked span.
	StartLine int

	// StartCol is the first column of the marked span.
	StartCol int

	// EndLine is the last line of the marked span.
	EndLine int

	// EndCol is the column just past the marked span.
	EndCol int

	// Message is the diagnostic text.
	Message string

	// Severity is the diagnostic rank.
	Severity Severity

	// Source identifies the producer (linter, compiler), optional.
	Source string

	// Code is the producer's rule or error code, optional.
	Code string
}

// Counts aggregates markers by severity.
type Counts struct {
	Errors   int
	Warnings int
	Infos    int
	Hints    int
}

// Total returns the sum of all counted markers.
func (c Counts) Total() int {
	return c.Errors + c.Warnings + c.Infos + c.Hints
}

// Count tallies markers by severity. Unrecognized severities are not
// counted.
func Count(markers []Marker) Counts {
	var c Counts
	for _, m := range markers {
		switch m.Severity {
		case SeverityError:
			c.Errors++
		case SeverityWarning:
			c.Warnings++
		case SeverityInfo:
			c.Infos++
		case SeverityHint:
			c.Hints++
		}
	}
	return c
}

// MaxSeverity returns the highest severity present in the markers,
// or zero if the slice is empty.
func MaxSeverity(markers []Marker) Severity {
	var max Severity
	for _, m := range markers {
		if m.Severity > max {
			max = m.Severity
		}
	}
	return max
}
