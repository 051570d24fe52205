package diag

import "sort"

// FilterOptions controls which markers survive a filtering pass.
type FilterOptions struct {
	// Allowed is the severity allow-list.
	Allowed Set

	// ActiveLineOnly retains only markers starting on CursorLine.
	ActiveLineOnly bool

	// CursorLine is the current cursor line, valid when HasCursor is true.
	CursorLine int

	// HasCursor reports whether a cursor position is available.
	// When ActiveLineOnly is set and no cursor is available, the pass
	// retains nothing rather than erroring.
	HasCursor bool

	// MaxPerLine caps each line's display list when positive.
	MaxPerLine int
}

// LineGroup holds the markers for one line after filtering.
// Markers is the display list, truncated to the per-line cap and ordered
// by descending severity. All is the full severity-sorted line set and
// always backs the hover summary regardless of the cap.
type LineGroup struct {
	Line    int
	Markers []Marker
	All     []Marker
}

// FilterBySeverity drops markers whose severity is not in the allow-list.
func FilterBySeverity(markers []Marker, allowed Set) []Marker {
	if len(markers) == 0 {
		return nil
	}

	var filtered []Marker
	for _, m := range markers {
		if allowed.Has(m.Severity) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// SortMarkers returns a copy sorted ascending by start line and, within
// a line, descending by severity (errors first). The sort is stable so
// markers with equal line and severity keep their input order.
func SortMarkers(markers []Marker) []Marker {
	sorted := make([]Marker, len(markers))
	copy(sorted, markers)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartLine != sorted[j].StartLine {
			return sorted[i].StartLine < sorted[j].StartLine
		}
		return sorted[i].Severity > sorted[j].Severity
	})

	return sorted
}

// GroupByLine groups sorted markers by start line. Groups come out in
// ascending line order with each group's markers in the input order.
func GroupByLine(markers []Marker) []LineGroup {
	if len(markers) == 0 {
		return nil
	}

	var groups []LineGroup
	for _, m := range markers {
		n := len(groups)
		if n > 0 && groups[n-1].Line == m.StartLine {
			groups[n-1].All = append(groups[n-1].All, m)
			continue
		}
		groups = append(groups, LineGroup{Line: m.StartLine, All: []Marker{m}})
	}

	for i := range groups {
		groups[i].Markers = groups[i].All
	}
	return groups
}

// ApplyCap truncates each group's display list to max entries,
// preserving the existing order. All remains untouched. A non-positive
// max leaves the groups unchanged.
func ApplyCap(groups []LineGroup, max int) []LineGroup {
	if max <= 0 {
		return groups
	}
	for i := range groups {
		if len(groups[i].Markers) > max {
			groups[i].Markers = groups[i].Markers[:max]
		}
	}
	return groups
}

// Filter runs the full filtering pipeline: severity allow-list, sort,
// optional active-line retention, group-by-line, and per-line cap.
func Filter(markers []Marker, opts FilterOptions) []LineGroup {
	filtered := FilterBySeverity(markers, opts.Allowed)
	filtered = SortMarkers(filtered)

	if opts.ActiveLineOnly {
		if !opts.HasCursor {
			return nil
		}
		var onLine []Marker
		for _, m := range filtered {
			if m.StartLine == opts.CursorLine {
				onLine = append(onLine, m)
			}
		}
		filtered = onLine
	}

	groups := GroupByLine(filtered)
	return ApplyCap(groups, opts.MaxPerLine)
}
