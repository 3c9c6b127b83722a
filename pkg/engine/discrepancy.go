package engine

import (
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// Severity ranks how badly a person's record disagrees with the feeds.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
	SeverityInfo   Severity = "INFO"
	SeverityNone   Severity = ""
)

var severityRank = map[Severity]int{
	SeverityNone:   0,
	SeverityInfo:   1,
	SeverityLow:    2,
	SeverityMedium: 3,
	SeverityHigh:   4,
}

// Flag names a single discrepancy found on a scheduled person.
type Flag string

const (
	FlagPresentOnLeave    Flag = "PRESENT_ON_LEAVE"
	FlagNoEmployeeID      Flag = "NO_EMPLOYEE_ID"
	FlagUnknownEmployment Flag = "UNKNOWN_EMPLOYMENT"
	FlagNotInTimeFeed     Flag = "NOT_IN_TIME_FEED"
	FlagCornerMismatch    Flag = "CORNER_MISMATCH"
	FlagNoStartDate       Flag = "NO_START_DATE"
)

var flagSeverity = map[Flag]Severity{
	FlagPresentOnLeave:    SeverityHigh,
	FlagNoEmployeeID:      SeverityMedium,
	FlagUnknownEmployment: SeverityMedium,
	FlagNotInTimeFeed:     SeverityLow,
	FlagCornerMismatch:    SeverityLow,
	FlagNoStartDate:       SeverityInfo,
}

// Discrepancy lists the flags raised for one person and the highest severity.
type Discrepancy struct {
	Flags    []Flag   `json:"flags,omitempty"`
	Severity Severity `json:"severity,omitempty"`
}

// CheckDiscrepancies evaluates a scheduled person against the feeds:
//   - marked present while booked on vacation = HIGH
//   - no usable employee id = MEDIUM (cannot be joined at all)
//   - employment type not classifiable = MEDIUM (drops out of every total)
//   - id never sighted in the time feed = LOW
//   - corner column disagrees with the shift pattern = LOW
//   - no parseable start date = INFO (new-hire rule cannot apply)
//
// The person's severity is the highest applicable level.
func CheckDiscrepancies(p schema.EnrichedPerson, attendance *AttendanceIndex) Discrepancy {
	var d Discrepancy

	if p.IsPresent && p.IsOnLeave {
		d.raise(FlagPresentOnLeave)
	}
	if p.EmployeeID == "" {
		d.raise(FlagNoEmployeeID)
	}
	if p.EmploymentCategory == schema.CategoryUnknown {
		d.raise(FlagUnknownEmployment)
	}
	if p.EmployeeID != "" && !attendance.Seen(p.EmployeeID) {
		d.raise(FlagNotInTimeFeed)
	}
	if len(DetectConflicts(p)) > 0 {
		d.raise(FlagCornerMismatch)
	}
	if !p.HasStartDate() {
		d.raise(FlagNoStartDate)
	}

	return d
}

func (d *Discrepancy) raise(f Flag) {
	d.Flags = append(d.Flags, f)
	if s := flagSeverity[f]; severityRank[s] > severityRank[d.Severity] {
		d.Severity = s
	}
}

// SeveritySummary contains counts of people at each highest severity.
type SeveritySummary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Info   int `json:"info"`
	Clean  int `json:"clean"`
}

// Add increments the counter for s.
func (s *SeveritySummary) Add(level Severity) {
	switch level {
	case SeverityHigh:
		s.High++
	case SeverityMedium:
		s.Medium++
	case SeverityLow:
		s.Low++
	case SeverityInfo:
		s.Info++
	default:
		s.Clean++
	}
}
