package ingest

import (
	"strconv"
	"strings"
)

// Parser turns a raw line into numeric values. The one configurable knob is
// the delimiter: empty means one value per line, a single character means
// the line carries several delimiter-separated values (some sender variants
// wrap each value in "!" markers). One strategy object is shared by
// discovery probing and the ingestion loop so both sides agree on what
// counts as valid data.
type Parser struct {
	delimiter string
}

// NewParser creates a parser for the given delimiter ("" for single-token
// lines).
func NewParser(delimiter string) Parser {
	return Parser{delimiter: delimiter}
}

// Values extracts every numeric value from a raw line. Non-numeric pieces
// are counted as garbage rather than aborting the line; invalid UTF-8 is
// replaced before parsing instead of being treated as an error. Blank lines
// yield nothing at all.
func (p Parser) Values(raw string) (vals []float64, garbage int) {
	line := strings.TrimSpace(strings.ToValidUTF8(raw, "�"))
	if line == "" {
		return nil, 0
	}

	pieces := []string{line}
	if p.delimiter != "" {
		pieces = strings.Split(line, p.delimiter)
	}

	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			// Delimiter-wrapped values ("!23.5!") produce empty
			// pieces at the edges; those are not garbage.
			continue
		}
		v, err := strconv.ParseFloat(piece, 64)
		if err != nil {
			garbage++
			continue
		}
		vals = append(vals, v)
	}
	return vals, garbage
}
