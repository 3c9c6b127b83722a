package schema

import "time"

// Row is one raw record from an uploaded file, keyed by the file's own header names.
type Row map[string]string

// Table is a parsed tabular file. Headers keep the file's column order, which
// header resolution depends on; Rows hold the values keyed by those headers.
type Table struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Category is the employment classification of a person.
type Category string

const (
	CategoryAMZN    Category = "AMZN"
	CategoryTEMP    Category = "TEMP"
	CategoryUnknown Category = "UNKNOWN"
)

// EnrichedPerson is one roster row after identifier normalization, classification
// and the join against the attendance and leave indexes. It is built once per run
// by the enrichment stage and never modified afterwards; stages that need to tag
// a person wrap it in a new record instead.
type EnrichedPerson struct {
	EmployeeID          string     `json:"employeeId"`
	DepartmentID        string     `json:"departmentId"`
	ManagementAreaID    string     `json:"managementAreaId"`
	EmploymentCategory  Category   `json:"employmentCategory"`
	ShiftPattern        string     `json:"shiftPattern"`
	CornerCode          string     `json:"cornerCode"`
	ScheduleMarker      string     `json:"scheduleMarker"`
	EmploymentStartDate *time.Time `json:"employmentStartDate,omitempty"`
	IsPresent           bool       `json:"isPresent"`
	IsOnLeave           bool       `json:"isOnLeave"`
	SourceRow           int        `json:"sourceRow"`
}

// HasStartDate reports whether a start date could be parsed for the person.
func (p EnrichedPerson) HasStartDate() bool {
	return p.EmploymentStartDate != nil
}
