package parser

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

func TestParseCSV(t *testing.T) {
	t.Parallel()

	data := []byte("Employee ID, Department ID ,Shift Pattern\r\n0042,1211030,AM1X\r\n\r\n , ,\r\n77,1299040,PM2Y\r\n")
	table, err := ParseCSV("roster.csv", data, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Employee ID", "Department ID", "Shift Pattern"}, table.Headers)
	want := []schema.Row{
		{"Employee ID": "0042", "Department ID": "1211030", "Shift Pattern": "AM1X"},
		{"Employee ID": "77", "Department ID": "1299040", "Shift Pattern": "PM2Y"},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSVSkipsTitleLine(t *testing.T) {
	t.Parallel()

	data := []byte("Time Detail Report - generated 2024-05-06\nPerson ID,On Premises\n1,X\n2,\n")
	result, err := ParseCSVWithWarnings("mytime.csv", data, Options{SkipLines: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"Person ID", "On Premises"}, result.Table.Headers)
	assert.Equal(t, 2, result.Table.Len())
	assert.Empty(t, result.Warnings)
}

func TestParseCSVPadsAndTruncates(t *testing.T) {
	t.Parallel()

	data := []byte("a,b,c\n1,2\n1,2,3,4\n")
	result, err := ParseCSVWithWarnings("x.csv", data, Options{})
	require.NoError(t, err)

	require.Len(t, result.Warnings, 2)
	assert.Equal(t, 2, result.Warnings[0].Row)
	assert.Equal(t, 3, result.Warnings[1].Row)
	assert.Equal(t, schema.Row{"a": "1", "b": "2", "c": ""}, result.Table.Rows[0])
	assert.Equal(t, schema.Row{"a": "1", "b": "2", "c": "3"}, result.Table.Rows[1])
}

func TestParseCSVDuplicateAndUnnamedHeaders(t *testing.T) {
	t.Parallel()

	data := []byte("\ufeffEmployee ID,Vacation,Vacation,Unnamed: 3\n1,8,0,junk\n")
	table, err := ParseCSV("hours.csv", data, Options{DropUnnamed: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"Employee ID", "Vacation", "Vacation_1"}, table.Headers)
	assert.Equal(t, schema.Row{"Employee ID": "1", "Vacation": "8", "Vacation_1": "0"}, table.Rows[0])
}

func TestParseCSVDropsRepeatedBlankHeaders(t *testing.T) {
	t.Parallel()

	data := []byte("Employee ID,,Vacation,,\n1,x,8,y,z\n")
	table, err := ParseCSV("hours.csv", data, Options{DropUnnamed: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"Employee ID", "Vacation"}, table.Headers)
	assert.Equal(t, schema.Row{"Employee ID": "1", "Vacation": "8"}, table.Rows[0])
}

func TestParseCSVEmpty(t *testing.T) {
	t.Parallel()

	_, err := ParseCSV("empty.csv", nil, Options{})
	assert.Error(t, err)

	_, err = ParseCSV("title-only.csv", []byte("Report title\n"), Options{SkipLines: 1})
	assert.Error(t, err)
}

func TestDetectAndDecode(t *testing.T) {
	t.Parallel()

	t.Run("utf-8 bom", func(t *testing.T) {
		out, enc, err := DetectAndDecode(append([]byte{0xEF, 0xBB, 0xBF}, "a,b"...))
		require.NoError(t, err)
		assert.Equal(t, "utf-8-bom", enc)
		assert.Equal(t, "a,b", string(out))
	})

	t.Run("utf-16 le", func(t *testing.T) {
		encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("Person ID,On Premises"))
		require.NoError(t, err)
		out, enc, err := DetectAndDecode(encoded)
		require.NoError(t, err)
		assert.Equal(t, "utf-16le", enc)
		assert.Equal(t, "Person ID,On Premises", string(out))
	})

	t.Run("windows-1252", func(t *testing.T) {
		encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte("José,Müller"))
		require.NoError(t, err)
		out, enc, err := DetectAndDecode(encoded)
		require.NoError(t, err)
		assert.Equal(t, "windows-1252", enc)
		assert.Equal(t, "José,Müller", string(out))
	})
}

func TestDetectTitleLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, DetectTitleLine("hours.csv", []byte("CAN Daily Hours Summary\nEmployee ID,Vacation\n1,8\n")))
	assert.Equal(t, 0, DetectTitleLine("hours.csv", []byte("Employee ID,Vacation\n1,8\n")))
	assert.Equal(t, 0, DetectTitleLine("hours.csv", []byte("single line")))
}

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	return buf.Bytes()
}

func TestParseWorkbook(t *testing.T) {
	t.Parallel()

	data := workbookBytes(t, [][]interface{}{
		{"Employee ID", "Department ID", "Shift Pattern", "Corner"},
		{"0042", "1211030", "AM1X"},
		{"77", "1299040", "PM2Y", "PM"},
	})

	result, err := Parse("roster.xlsx", data, Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, []string{"Employee ID", "Department ID", "Shift Pattern", "Corner"}, result.Table.Headers)
	require.Equal(t, 2, result.Table.Len())
	assert.Equal(t, "", result.Table.Rows[0]["Corner"])
	assert.Equal(t, "PM", result.Table.Rows[1]["Corner"])
}

func TestDetectTitleLineWorkbook(t *testing.T) {
	t.Parallel()

	data := workbookBytes(t, [][]interface{}{
		{"CAN Daily Hours Summary"},
		{"Employee ID", "Vacation", "Vacation Unpaid"},
		{"1", "8", "0"},
	})
	require.Equal(t, 1, DetectTitleLine("hours.xlsx", data))

	result, err := Parse("hours.xlsx", data, Options{SkipLines: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Employee ID", "Vacation", "Vacation Unpaid"}, result.Table.Headers)
	assert.Equal(t, 1, result.Table.Len())
}
