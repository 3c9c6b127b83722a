package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// IsWorkbook reports whether name looks like an Excel workbook.
func IsWorkbook(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return true
	}
	return false
}

// Parse dispatches on the file name: workbooks go through excelize, everything
// else is treated as CSV.
func Parse(name string, data []byte, opts Options) (*ParseResult, error) {
	if IsWorkbook(name) {
		return ParseWorkbook(name, data, opts)
	}
	return ParseCSVWithWarnings(name, data, opts)
}

// ParseWorkbook reads the first worksheet of an .xlsx file. SkipLines counts
// worksheet rows instead of text lines.
func ParseWorkbook(name string, data []byte, opts Options) (*ParseResult, error) {
	rows, err := readFirstSheet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if opts.SkipLines >= len(rows) {
		return nil, fmt.Errorf("%s: empty file: no header row found", name)
	}
	rows = rows[opts.SkipLines:]

	rowNums := make([]int, len(rows)-1)
	for i := range rowNums {
		rowNums[i] = opts.SkipLines + i + 2
	}

	table, warnings := buildTable(name, rows[0], padRows(rows[1:], len(rows[0])), rowNums, opts)
	return &ParseResult{Table: table, Warnings: warnings}, nil
}

func readFirstSheet(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}
	return rows, nil
}

// padRows widens short rows to width. excelize omits trailing empty cells, which
// would otherwise show up as column-count warnings on every row.
func padRows(rows [][]string, width int) [][]string {
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		}
	}
	return rows
}
