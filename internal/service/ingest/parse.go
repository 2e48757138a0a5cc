// Package ingest turns a delimited scale-ticket export into grain tickets:
// parse rows, suggest a column mapping, let the operator override it and
// build normalized tickets.
package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ParseRows reads delimited text into trimmed rows. Quoted fields may hold
// separators, doubled quotes and line breaks, also after leading spaces;
// LF and CRLF both end a row.
// Rows whose cells are all empty are dropped, and so are rows the reader
// cannot make sense of.
func ParseRows(text string) [][]string {
	text = strings.TrimPrefix(text, "\ufeff")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			break
		}

		blank := true
		for i, cell := range record {
			record[i] = strings.TrimSpace(cell)
			if record[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, record)
	}
	return rows
}
