package engine

import (
	"github.com/katpally123/attendance-dashboard/pkg/config"
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// Feeds holds the parsed input tables of one run. Leave is nil when no leave
// feed was supplied.
type Feeds struct {
	Roster     *schema.Table
	Attendance *schema.Table
	Leave      *schema.Table
}

// Funnel is the row count after each stage of a run.
type Funnel struct {
	RosterRows      int `json:"rosterRows"`
	AttendanceRows  int `json:"attendanceRows"`
	LeaveRows       int `json:"leaveRows"`
	AfterCorner     int `json:"afterCorner"`
	AfterNewHire    int `json:"afterNewHire"`
	AfterVacation   int `json:"afterVacation"`
	Unbucketed      int `json:"unbucketed"`
	PresentPreVac   int `json:"presentPreVacation"`
	NewHireExcluded int `json:"newHireExcluded"`
}

// Outcome carries every intermediate collection of a run so report and audit
// code can derive their views without recomputing anything.
type Outcome struct {
	Selection      Selection `json:"selection"`
	Codes          []string  `json:"codes"`
	Buckets        []string  `json:"buckets"`
	PresentMarkers []string  `json:"presentMarkers"`

	Attendance *AttendanceIndex `json:"attendance"`
	Vacation   *VacationIndex   `json:"vacation,omitempty"`
	Enriched   *EnrichResult    `json:"enriched"`

	// Scheduled is the corner- and new-hire-filtered cohort, before vacation.
	Scheduled []schema.EnrichedPerson `json:"-"`
	// Expected is Scheduled minus people on leave.
	Expected []schema.EnrichedPerson `json:"-"`
	// VacationExcluded is the people removed from Expected for leave.
	VacationExcluded []schema.EnrichedPerson `json:"-"`

	ExpectedGroups  map[string][]schema.EnrichedPerson `json:"-"`
	ScheduledGroups map[string][]schema.EnrichedPerson `json:"-"`
	// PresentGroups holds the present subset of each ScheduledGroups entry.
	PresentGroups map[string][]schema.EnrichedPerson `json:"-"`

	ExpectedCounts BucketCounts `json:"expectedCounts"`
	PresentCounts  BucketCounts `json:"presentCounts"`
	Funnel         Funnel       `json:"funnel"`

	// assigned maps a roster row number to its bucket in the pre-vacation partition.
	assigned map[int]string
}

// HasLeaveFeed reports whether a leave feed took part in the run.
func (o *Outcome) HasLeaveFeed() bool {
	return o.Vacation != nil
}

// Reconcile runs the whole pipeline over the parsed feeds:
//  1. Build the attendance index (OR semantics over repeated ids)
//  2. Build the vacation index when a leave feed is present
//  3. Enrich every roster row
//  4. Keep rows whose corner is scheduled for the selected day and shift
//  5. Optionally drop new hires
//  6. Split off people on leave; the remainder is the expected cohort
//  7. Partition both the expected and the pre-vacation cohorts into buckets
//  8. Count expected, and present from the pre-vacation groups
//
// The settings value is only read. Stages never reorder: each narrows the
// cohort produced by the previous one.
func Reconcile(settings config.Settings, feeds Feeds, sel Selection) (*Outcome, error) {
	codes, err := ShiftCodes(settings, sel)
	if err != nil {
		return nil, err
	}

	attendance, err := BuildAttendanceIndex(feeds.Attendance, settings)
	if err != nil {
		return nil, err
	}

	var vacation *VacationIndex
	if feeds.Leave != nil {
		vacation = BuildVacationIndex(feeds.Leave)
	}

	enriched, err := Enrich(feeds.Roster, attendance, vacation)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Selection:      sel,
		Codes:          codes,
		PresentMarkers: append([]string(nil), settings.PresentMarkers...),
		Attendance:     attendance,
		Vacation:       vacation,
		Enriched:       enriched,
	}
	out.Funnel.RosterRows = feeds.Roster.Len()
	out.Funnel.AttendanceRows = feeds.Attendance.Len()
	if feeds.Leave != nil {
		out.Funnel.LeaveRows = feeds.Leave.Len()
	}

	scheduled := FilterCorner(enriched.People, codes)
	out.Funnel.AfterCorner = len(scheduled)

	if sel.ExcludeNewHires {
		scheduled = FilterNewHires(scheduled, sel.Date, sel.newHireDays())
	}
	out.Funnel.AfterNewHire = len(scheduled)
	out.Funnel.NewHireExcluded = out.Funnel.AfterCorner - out.Funnel.AfterNewHire
	out.Scheduled = scheduled

	out.Expected, out.VacationExcluded = SplitVacation(scheduled)
	out.Funnel.AfterVacation = len(out.Expected)

	bucketer := NewBucketer(settings)
	out.Buckets = bucketer.Order()

	var unbucketed []schema.EnrichedPerson
	out.ExpectedGroups, _ = bucketer.Partition(out.Expected)
	out.ScheduledGroups, unbucketed = bucketer.Partition(scheduled)
	out.Funnel.Unbucketed = len(unbucketed)

	out.assigned = make(map[int]string, len(scheduled))
	for name, people := range out.ScheduledGroups {
		for _, p := range people {
			out.assigned[p.SourceRow] = name
		}
	}

	out.PresentGroups = make(map[string][]schema.EnrichedPerson, len(out.ScheduledGroups))
	for name, people := range out.ScheduledGroups {
		out.PresentGroups[name] = OnlyPresent(people)
	}
	out.Funnel.PresentPreVac = len(OnlyPresent(scheduled))

	out.ExpectedCounts = CountBuckets(out.ExpectedGroups, false)
	out.PresentCounts = CountBuckets(out.ScheduledGroups, true)

	return out, nil
}

// BucketOf returns the bucket that claimed p in the pre-vacation partition,
// or BucketOther.
func (o *Outcome) BucketOf(p schema.EnrichedPerson) string {
	if name, ok := o.assigned[p.SourceRow]; ok {
		return name
	}
	return BucketOther
}
