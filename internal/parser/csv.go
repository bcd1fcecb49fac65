package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles CSV files. Records are re-joined with tabs so quoted
// commas inside a label survive delimiter detection. A single-column file
// carries no delimiter and is read as an outline.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Source, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		for i, cell := range rec {
			// Tabs inside a cell would split it; only leading indentation matters.
			rec[i] = strings.ReplaceAll(strings.TrimRight(cell, " \t"), "\t", "  ")
		}
		lines = append(lines, strings.Join(rec, "\t"))
	}

	return &Source{
		Title: trimExt(filename),
		Text:  strings.Join(lines, "\n"),
	}, nil
}
