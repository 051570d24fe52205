package main

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/dshills/glint/internal/diag"
)

// loadMarkers reads a marker file: a JSON array of objects with "line",
// "message", and "severity" fields plus optional "col", "endLine",
// "endCol", "source", and "code". Unknown severities default to error
// so a malformed entry is still visible rather than dropped.
func loadMarkers(path string) ([]diag.Marker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markers: %w", err)
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("markers file %s: expected a JSON array", path)
	}

	var markers []diag.Marker
	for _, entry := range parsed.Array() {
		line := int(entry.Get("line").Int())
		if line < 1 {
			continue
		}

		sev, ok := diag.ParseSeverity(entry.Get("severity").String())
		if !ok {
			sev = diag.SeverityError
		}

		m := diag.Marker{
			StartLine: line,
			StartCol:  int(entry.Get("col").Int()),
			EndLine:   int(entry.Get("endLine").Int()),
			EndCol:    int(entry.Get("endCol").Int()),
			Message:   entry.Get("message").String(),
			Severity:  sev,
			Source:    entry.Get("source").String(),
			Code:      entry.Get("code").String(),
		}
		if m.StartCol < 1 {
			m.StartCol = 1
		}
		if m.EndLine < m.StartLine {
			m.EndLine = m.StartLine
		}
		markers = append(markers, m)
	}
	return markers, nil
}
