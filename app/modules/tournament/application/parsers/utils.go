package parsers

import "strings"

// headerLabels are first-row values treated as a column header, not a golfer.
// Keys are in normalizeHeader form.
var headerLabels = map[string]struct{}{
	"name":        {},
	"names":       {},
	"fullname":    {},
	"golfer":      {},
	"golfers":     {},
	"golfername":  {},
	"golfernames": {},
	"player":      {},
	"players":     {},
	"playername":  {},
	"playernames": {},
}

// normalizeHeader lower-cases a cell and drops spaces, underscores and dashes,
// so "Golfer Name", "golfer_name" and "GolferName" compare equal.
func normalizeHeader(cell string) string {
	norm := strings.ToLower(strings.TrimSpace(cell))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)
}

func isHeaderCell(cell string) bool {
	_, ok := headerLabels[normalizeHeader(cell)]
	return ok
}

// firstColumnNames takes the first cell of every non-blank row, in file
// order. A leading header row is skipped. Duplicates are kept.
func firstColumnNames(rows [][]string) []string {
	var names []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		if (i == 0 || len(names) == 0) && isHeaderCell(name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// detectDelimiter picks comma, semicolon or tab by counting each in the
// first few lines. Comma wins ties.
func detectDelimiter(text string) rune {
	lines := strings.SplitN(text, "\n", 6)
	if len(lines) > 5 {
		lines = lines[:5]
	}

	delimiter, best := ',', 0
	for _, candidate := range []rune{',', ';', '\t'} {
		count := 0
		for _, line := range lines {
			count += strings.Count(line, string(candidate))
		}
		if count > best {
			delimiter, best = candidate, count
		}
	}
	return delimiter
}
