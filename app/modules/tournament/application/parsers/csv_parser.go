package parsers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyRoster is returned when a file contains no golfer names.
var ErrEmptyRoster = errors.New("roster file contains no golfer names")

// CSVParser reads a roster from CSV or plain text, one golfer per line.
// Comma, semicolon and tab delimiters are detected. Only the first column is
// used.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse returns the golfer names in file order.
func (p *CSVParser) Parse(data []byte) ([]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(string(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = reader.Comma != '\t'

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}

	names := firstColumnNames(rows)
	if len(names) == 0 {
		return nil, ErrEmptyRoster
	}
	return names, nil
}
