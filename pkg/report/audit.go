package report

import (
	"sort"

	"github.com/katpally123/attendance-dashboard/pkg/engine"
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// Drill-down sample keys, one per table cell.
const (
	SampleExpectedAMZN  = "exp-amzn"
	SampleExpectedTEMP  = "exp-temp"
	SampleExpectedTotal = "exp-tot"
	SamplePresentAMZN   = "pre-amzn"
	SamplePresentTEMP   = "pre-temp"
	SamplePresentTotal  = "pre-tot"
)

// Pills are the headline audit numbers.
type Pills struct {
	RosterRows       int      `json:"rosterRows"`
	TimeFeedRows     int      `json:"timeFeedRows"`
	LeaveRows        int      `json:"leaveRows"`
	VacationExcluded int      `json:"vacationExcluded"`
	IDMatches        int      `json:"idMatches"`
	Scheduled        int      `json:"scheduled"`
	AfterCorner      int      `json:"afterCorner"`
	PresentMarkers   []string `json:"presentMarkers"`
}

// ValueCount is one entry of a frequency table.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Distributions holds the top values of the fields that drive filtering and
// bucketing. Corners are counted over the whole roster so a wrong schedule
// shows up; the rest over the scheduled cohort.
type Distributions struct {
	Corner     []ValueCount `json:"corner"`
	Department []ValueCount `json:"department"`
	Area       []ValueCount `json:"area"`
	Category   []ValueCount `json:"category"`
}

// Sample is one drill-down row.
type Sample struct {
	EmployeeID string          `json:"empId"`
	Category   schema.Category `json:"empType"`
	DeptID     string          `json:"deptId"`
	AreaID     string          `json:"areaId"`
	Corner     string          `json:"corner"`
	OnPrem     bool            `json:"onPrem"`
	Vacation   bool            `json:"vac"`
}

// Audit is the read-only diagnostic view of a run.
type Audit struct {
	Pills         Pills                          `json:"pills"`
	Funnel        engine.Funnel                  `json:"funnel"`
	Distributions Distributions                  `json:"distributions"`
	Markers       []ValueCount                   `json:"markers"`
	Samples       map[string]map[string][]Sample `json:"samples"`
	Severity      engine.SeveritySummary         `json:"severity"`
	Unrostered    engine.Unrostered              `json:"unrostered"`
	Enrich        engine.EnrichStats             `json:"enrich"`
	Attendance    engine.AttendanceStats         `json:"attendance"`
	Leave         *engine.VacationStats          `json:"leave,omitempty"`
	Conflicts     []ConflictRow                  `json:"conflicts"`
}

// ConflictRow is a field conflict found on one scheduled roster row.
type ConflictRow struct {
	EmployeeID string `json:"empId"`
	SourceRow  int    `json:"sourceRow"`
	engine.FieldConflict
}

// BuildAudit derives the audit panel from an outcome. Nothing in the outcome
// is modified.
func BuildAudit(o *engine.Outcome, opts Options) Audit {
	a := Audit{
		Funnel:     o.Funnel,
		Markers:    histogram(o.Attendance.MarkerCounts),
		Samples:    make(map[string]map[string][]Sample, len(o.Buckets)),
		Unrostered: engine.FindUnrostered(o.Attendance, o.Enriched.People, opts.sampleLimit()),
		Enrich:     o.Enriched.Stats,
		Attendance: o.Attendance.Stats,
	}
	if o.HasLeaveFeed() {
		stats := o.Vacation.Stats
		a.Leave = &stats
	}

	a.Pills = Pills{
		RosterRows:       o.Funnel.RosterRows,
		TimeFeedRows:     o.Funnel.AttendanceRows,
		LeaveRows:        o.Funnel.LeaveRows,
		VacationExcluded: len(o.VacationExcluded),
		Scheduled:        len(o.Scheduled),
		AfterCorner:      o.Funnel.AfterCorner,
		PresentMarkers:   o.PresentMarkers,
	}
	for _, p := range o.Scheduled {
		if o.Attendance.Seen(p.EmployeeID) {
			a.Pills.IDMatches++
		}
		a.Severity.Add(engine.CheckDiscrepancies(p, o.Attendance).Severity)
	}

	a.Distributions = distributions(o, opts.topN())

	limit := opts.sampleLimit()
	a.Conflicts = conflictRows(o.Scheduled, limit)
	for _, name := range o.Buckets {
		expected := o.ExpectedGroups[name]
		present := o.PresentGroups[name]
		a.Samples[name] = map[string][]Sample{
			SampleExpectedAMZN:  sampleOf(expected, schema.CategoryAMZN, limit),
			SampleExpectedTEMP:  sampleOf(expected, schema.CategoryTEMP, limit),
			SampleExpectedTotal: sampleOf(expected, "", limit),
			SamplePresentAMZN:   sampleOf(present, schema.CategoryAMZN, limit),
			SamplePresentTEMP:   sampleOf(present, schema.CategoryTEMP, limit),
			SamplePresentTotal:  sampleOf(present, "", limit),
		}
	}

	return a
}

// conflictRows lists up to limit field conflicts in roster order.
func conflictRows(people []schema.EnrichedPerson, limit int) []ConflictRow {
	out := make([]ConflictRow, 0)
	for _, p := range people {
		for _, c := range engine.DetectConflicts(p) {
			if len(out) >= limit {
				return out
			}
			out = append(out, ConflictRow{EmployeeID: p.EmployeeID, SourceRow: p.SourceRow, FieldConflict: c})
		}
	}
	return out
}

// sampleOf returns up to limit people of the given category, in roster order.
// An empty category matches everyone.
func sampleOf(people []schema.EnrichedPerson, category schema.Category, limit int) []Sample {
	out := make([]Sample, 0)
	for _, p := range people {
		if len(out) >= limit {
			break
		}
		if category != "" && p.EmploymentCategory != category {
			continue
		}
		out = append(out, Sample{
			EmployeeID: p.EmployeeID,
			Category:   p.EmploymentCategory,
			DeptID:     p.DepartmentID,
			AreaID:     p.ManagementAreaID,
			Corner:     p.CornerCode,
			OnPrem:     p.IsPresent,
			Vacation:   p.IsOnLeave,
		})
	}
	return out
}

func distributions(o *engine.Outcome, n int) Distributions {
	corner := make(map[string]int)
	for _, p := range o.Enriched.People {
		corner[p.CornerCode]++
	}

	dept := make(map[string]int)
	area := make(map[string]int)
	category := make(map[string]int)
	for _, p := range o.Scheduled {
		dept[p.DepartmentID]++
		area[p.ManagementAreaID]++
		category[string(p.EmploymentCategory)]++
	}

	return Distributions{
		Corner:     TopValues(corner, n),
		Department: TopValues(dept, n),
		Area:       TopValues(area, n),
		Category:   TopValues(category, n),
	}
}

// TopValues returns the n most frequent values, most frequent first; ties are
// ordered by value. Blank values are reported as "(blank)".
func TopValues(counts map[string]int, n int) []ValueCount {
	out := histogram(counts)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func histogram(counts map[string]int) []ValueCount {
	out := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		if v == "" {
			v = "(blank)"
		}
		out = append(out, ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
