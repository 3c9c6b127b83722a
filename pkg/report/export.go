package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/katpally123/attendance-dashboard/pkg/engine"
)

// ExportHeaders is the column order of the audit export.
var ExportHeaders = []string{"empId", "empType", "deptId", "areaId", "corner", "onPrem", "vac", "bucket", "flags"}

// ExportRow tags one scheduled person with bucket, classification, presence
// and leave status.
type ExportRow struct {
	EmployeeID string `json:"empId"`
	Category   string `json:"empType"`
	DeptID     string `json:"deptId"`
	AreaID     string `json:"areaId"`
	Corner     string `json:"corner"`
	OnPrem     string `json:"onPrem"`
	Vacation   string `json:"vac"`
	Bucket     string `json:"bucket"`
	Flags      string `json:"flags"`
}

func (r ExportRow) values() []string {
	return []string{r.EmployeeID, r.Category, r.DeptID, r.AreaID, r.Corner, r.OnPrem, r.Vacation, r.Bucket, r.Flags}
}

// ExportRows builds one row per person of the pre-vacation scheduled cohort,
// in roster order. People no bucket claims are tagged "Other".
func ExportRows(o *engine.Outcome) []ExportRow {
	rows := make([]ExportRow, 0, len(o.Scheduled))
	for _, p := range o.Scheduled {
		d := engine.CheckDiscrepancies(p, o.Attendance)
		flags := make([]string, 0, len(d.Flags))
		for _, f := range d.Flags {
			flags = append(flags, string(f))
		}

		rows = append(rows, ExportRow{
			EmployeeID: p.EmployeeID,
			Category:   string(p.EmploymentCategory),
			DeptID:     p.DepartmentID,
			AreaID:     p.ManagementAreaID,
			Corner:     p.CornerCode,
			OnPrem:     yesNo(p.IsPresent),
			Vacation:   yesNo(p.IsOnLeave),
			Bucket:     o.BucketOf(p),
			Flags:      strings.Join(flags, "|"),
		})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

// ExportFilename returns the download name for the audit export without
// extension, e.g. "audit_Monday_Day".
func ExportFilename(day, shift string) string {
	return fmt.Sprintf("audit_%s_%s", day, shift)
}

// WriteCSV writes the export rows with a header line.
func WriteCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const exportSheet = "Audit"

// WriteXLSX writes the export rows to an "Audit" sheet with a bold header
// row, plus a "Summary" sheet holding the bucket tables.
func WriteXLSX(w io.Writer, r *Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(ExportHeaders))
	for i, h := range ExportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range r.Export {
		values := row.values()
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &cells); err != nil {
			return err
		}
	}

	if err := writeSummarySheet(f, r); err != nil {
		return err
	}

	return f.Write(w)
}

func writeSummarySheet(f *excelize.File, r *Result) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Day", r.Day, "Shift", r.Shift, "Corners", strings.Join(r.Corners, " ")},
		{},
		{"Department", "Exp AMZN", "Exp TEMP", "Exp TOTAL", "Pre AMZN", "Pre TEMP", "Pre TOTAL"},
	}
	for i := range r.Expected {
		e, p := r.Expected[i], r.Present[i]
		rows = append(rows, []interface{}{e.Bucket, e.AMZN, e.TEMP, e.Total, p.AMZN, p.TEMP, p.Total})
	}
	rows = append(rows,
		[]interface{}{"Total", r.ExpectedTotal.AMZN, r.ExpectedTotal.TEMP, r.ExpectedTotal.Total,
			r.PresentTotal.AMZN, r.PresentTotal.TEMP, r.PresentTotal.Total},
		[]interface{}{},
		[]interface{}{"Present %", r.Percent},
	)
	if r.VacationExcluded != nil {
		rows = append(rows, []interface{}{"Vacation excluded", *r.VacationExcluded})
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
