package ingest

import (
	"strconv"
	"strings"
)

// nullMarkers are source-file placeholders that coerce to null rather than
// failing the row.
var nullMarkers = map[string]bool{
	"":     true,
	"..":   true,
	"...":  true,
	"-":    true,
	"n/a":  true,
	"na":   true,
	"null": true,
	"nan":  true,
}

// parseNumeric parses a cell as a float, reporting false for null markers
// and anything non-numeric. Thousands separators and a stray trailing "%"
// are tolerated.
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(trimQuotes(s))
	if nullMarkers[strings.ToLower(s)] {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseYear parses a cell as an integer year, reporting false for null
// markers and non-integers. Fractional years from spreadsheet exports
// (e.g. "2016.0") are accepted.
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(trimQuotes(s))
	if nullMarkers[strings.ToLower(s)] {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// trimQuotes removes surrounding double quotes left by lazy CSV exports.
func trimQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// normalizeCol canonicalizes a header cell for matching: lowercase, strip
// parentheses and quotes, collapse spaces/hyphens/dots into underscores.
// "Overall Score" -> "overall_score", "GINI index (World Bank)" ->
// "gini_index_world_bank".
func normalizeCol(s string) string {
	s = strings.ToLower(trimQuotes(s))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case r == ' ' || r == '-' || r == '_' || r == '.' || r == '/':
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		default:
			// parentheses, percent signs, anything else: dropped
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// mapColumnsNormalized builds a normalized column name -> index map.
func mapColumnsNormalized(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		key := normalizeCol(col)
		if key == "" {
			continue
		}
		if _, exists := m[key]; !exists {
			m[key] = i
		}
	}
	return m
}

// cellAt returns the raw cell for a column index, "" when the row is short.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
