package engine

import (
	"strings"

	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// RosterColumns records which roster headers were resolved. Optional fields
// are empty when the roster does not carry them.
type RosterColumns struct {
	EmployeeID     string `json:"employeeId"`
	DepartmentID   string `json:"departmentId"`
	ManagementArea string `json:"managementArea,omitempty"`
	EmploymentType string `json:"employmentType,omitempty"`
	ShiftPattern   string `json:"shiftPattern,omitempty"`
	Corner         string `json:"corner,omitempty"`
	StartDate      string `json:"startDate,omitempty"`
}

// EnrichStats contains aggregate statistics about the enrichment stage.
// Unparseable values never fail a run; they are counted here instead.
type EnrichStats struct {
	TotalRows          int `json:"totalRows"`
	EmptyIDs           int `json:"emptyIds"`
	SeenInTimeFeed     int `json:"seenInTimeFeed"`
	Present            int `json:"present"`
	OnLeave            int `json:"onLeave"`
	UnknownTypes       int `json:"unknownTypes"`
	UnparsedStartDates int `json:"unparsedStartDates"`
}

// EnrichResult is the output of the enrichment stage.
type EnrichResult struct {
	People  []schema.EnrichedPerson `json:"people"`
	Columns RosterColumns           `json:"columns"`
	Stats   EnrichStats             `json:"stats"`
}

// ResolveRosterColumns resolves the roster headers. Employee id, department id
// and one of shift pattern or corner are required; everything else degrades to
// empty values.
func ResolveRosterColumns(headers []string) (RosterColumns, error) {
	cols := columnResolver{feed: "roster", headers: headers}

	var rc RosterColumns
	var err error
	if rc.EmployeeID, err = cols.required("Employee ID", schema.RosterEmployeeID); err != nil {
		return RosterColumns{}, err
	}
	if rc.DepartmentID, err = cols.required("Department ID", schema.RosterDepartmentID); err != nil {
		return RosterColumns{}, err
	}

	rc.ShiftPattern = cols.optional(schema.RosterShiftPattern)
	rc.Corner = cols.optional(schema.RosterCorner)
	if rc.ShiftPattern == "" && rc.Corner == "" {
		candidates := append(append([]string{}, schema.RosterShiftPattern...), schema.RosterCorner...)
		return RosterColumns{}, cols.missing("Shift Pattern or Corner", candidates)
	}

	rc.ManagementArea = cols.optional(schema.RosterManagementArea)
	rc.EmploymentType = cols.optional(schema.RosterEmploymentType)
	rc.StartDate = cols.optional(schema.RosterStartDate)
	return rc, nil
}

// Enrich turns every roster row into an EnrichedPerson:
//  1. Normalize the employee id
//  2. Classify the employment type
//  3. Take the corner from an explicit corner column, else the first two
//     characters of the shift pattern; the schedule marker is always derived
//     from the shift pattern
//  4. Parse the start date loosely (unparseable -> nil)
//  5. Look up presence and leave by normalized id
//
// vacation may be nil when no leave feed was supplied.
func Enrich(roster *schema.Table, attendance *AttendanceIndex, vacation *VacationIndex) (*EnrichResult, error) {
	cols, err := ResolveRosterColumns(roster.Headers)
	if err != nil {
		return nil, err
	}

	result := &EnrichResult{
		People:  make([]schema.EnrichedPerson, 0, len(roster.Rows)),
		Columns: cols,
	}

	for i, row := range roster.Rows {
		person := enrichRow(row, cols, attendance, vacation)
		person.SourceRow = i + 1

		if person.EmployeeID == "" {
			result.Stats.EmptyIDs++
		}
		if attendance.Seen(person.EmployeeID) {
			result.Stats.SeenInTimeFeed++
		}
		if person.IsPresent {
			result.Stats.Present++
		}
		if person.IsOnLeave {
			result.Stats.OnLeave++
		}
		if person.EmploymentCategory == schema.CategoryUnknown {
			result.Stats.UnknownTypes++
		}
		if cols.StartDate != "" && strings.TrimSpace(row[cols.StartDate]) != "" && !person.HasStartDate() {
			result.Stats.UnparsedStartDates++
		}

		result.People = append(result.People, person)
	}
	result.Stats.TotalRows = len(result.People)

	return result, nil
}

func enrichRow(row schema.Row, cols RosterColumns, attendance *AttendanceIndex, vacation *VacationIndex) schema.EnrichedPerson {
	field := func(col string) string {
		if col == "" {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	id := schema.NormalizeID(row[cols.EmployeeID])
	pattern := field(cols.ShiftPattern)

	corner := schema.CornerCode(pattern)
	if cols.Corner != "" {
		corner = field(cols.Corner)
	}

	return schema.EnrichedPerson{
		EmployeeID:          id,
		DepartmentID:        field(cols.DepartmentID),
		ManagementAreaID:    field(cols.ManagementArea),
		EmploymentCategory:  schema.ClassifyEmployment(field(cols.EmploymentType)),
		ShiftPattern:        pattern,
		CornerCode:          corner,
		ScheduleMarker:      schema.ScheduleMarker(pattern),
		EmploymentStartDate: schema.ParseDateLoose(field(cols.StartDate)),
		IsPresent:           attendance.IsPresent(id),
		IsOnLeave:           vacation.IsOnLeave(id),
	}
}
