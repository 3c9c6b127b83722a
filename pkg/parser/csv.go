package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// ParseWarning represents a non-fatal issue encountered while parsing a file.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Options controls how a tabular file is turned into a schema.Table.
type Options struct {
	// SkipLines drops leading physical lines before the header row, for exports
	// that carry a title line above the real header.
	SkipLines int
	// DropUnnamed removes columns whose header starts with "Unnamed", the
	// placeholder spreadsheet tools write for blank header cells.
	DropUnnamed bool
}

// ParseResult contains the parsed table alongside any warnings.
type ParseResult struct {
	Table    *schema.Table  `json:"table"`
	Warnings []ParseWarning `json:"warnings"`
}

// ParseCSV parses CSV bytes into a table and discards warnings.
func ParseCSV(name string, data []byte, opts Options) (*schema.Table, error) {
	result, err := ParseCSVWithWarnings(name, data, opts)
	if err != nil {
		return nil, err
	}
	return result.Table, nil
}

// ParseCSVWithWarnings parses CSV bytes and returns both the table and any warnings.
// It handles encoding detection, leading title lines, blank lines, mismatched
// column counts (pad/truncate) and duplicate header names.
func ParseCSVWithWarnings(name string, data []byte, opts Options) (*ParseResult, error) {
	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}
	decoded = skipLines(decoded, opts.SkipLines)

	reader := csv.NewReader(bytes.NewReader(decoded))
	// Allow variable number of fields per record; rows are padded/truncated below.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty file: no header row found", name)
		}
		return nil, fmt.Errorf("%s: failed to read header row: %w", name, err)
	}

	var raw [][]string
	var rowNums []int
	var warnings []ParseWarning
	rowNum := 1 + opts.SkipLines

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			warnings = append(warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}
		raw = append(raw, row)
		rowNums = append(rowNums, rowNum)
	}

	table, tableWarnings := buildTable(name, header, raw, rowNums, opts)
	warnings = append(warnings, tableWarnings...)

	return &ParseResult{
		Table:    table,
		Warnings: warnings,
	}, nil
}

// buildTable turns a header row plus data rows into a schema.Table. rowNums holds
// the 1-indexed source row number of each raw row, used in warnings.
func buildTable(name string, header []string, raw [][]string, rowNums []int, opts Options) (*schema.Table, []ParseWarning) {
	headers := uniqueHeaders(header)
	keep := make([]bool, len(headers))
	kept := make([]string, 0, len(headers))
	for i, h := range headers {
		// Check the raw name: repeated blanks are already renamed "_1", "_2".
		raw := strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
		if opts.DropUnnamed && (raw == "" || strings.HasPrefix(raw, "Unnamed")) {
			continue
		}
		keep[i] = true
		kept = append(kept, h)
	}

	table := &schema.Table{
		Name:    name,
		Headers: kept,
		Rows:    make([]schema.Row, 0, len(raw)),
	}

	var warnings []ParseWarning
	headerCount := len(headers)
	for n, row := range raw {
		if isBlank(row) {
			continue
		}

		if len(row) != headerCount {
			if len(row) < headerCount {
				warnings = append(warnings, ParseWarning{
					Row:     rowNums[n],
					Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), headerCount),
				})
				padded := make([]string, headerCount)
				copy(padded, row)
				row = padded
			} else {
				warnings = append(warnings, ParseWarning{
					Row:     rowNums[n],
					Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), headerCount),
				})
				row = row[:headerCount]
			}
		}

		record := make(schema.Row, len(kept))
		for i, h := range headers {
			if keep[i] {
				record[h] = row[i]
			}
		}
		table.Rows = append(table.Rows, record)
	}

	return table, warnings
}

// uniqueHeaders trims header names and renames repeats as "Name_1", "Name_2", ...
// so no column silently overwrites another.
func uniqueHeaders(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			out[i] = fmt.Sprintf("%s_%d", h, n+1)
			continue
		}
		seen[h] = 0
		out[i] = h
	}
	return out
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// skipLines drops the first n physical lines of data.
func skipLines(data []byte, n int) []byte {
	for ; n > 0; n-- {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			return nil
		}
		data = data[i+1:]
	}
	return data
}
