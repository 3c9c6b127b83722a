package report

import (
	"fmt"

	"github.com/katpally123/attendance-dashboard/pkg/engine"
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// Chip statuses for the present total.
const (
	StatusOK   = "ok"
	StatusWarn = "warn"
)

const (
	DefaultSampleLimit = 200
	DefaultTopN        = 10
)

// Options tunes the derived views. Zero values fall back to the defaults.
type Options struct {
	RunID       string
	SampleLimit int
	TopN        int
	// Warnings collected before the engine ran, e.g. parser row warnings.
	Warnings []string
}

func (o Options) sampleLimit() int {
	if o.SampleLimit > 0 {
		return o.SampleLimit
	}
	return DefaultSampleLimit
}

func (o Options) topN() int {
	if o.TopN > 0 {
		return o.TopN
	}
	return DefaultTopN
}

// BucketRow is one line of the expected or present table.
type BucketRow struct {
	Bucket string `json:"bucket"`
	engine.CountBlock
}

// Result is the final compiled output of one run: ordered bucket tables, the
// summary chips, the audit panel and the per-person export table.
type Result struct {
	RunID         string            `json:"runId"`
	Date          string            `json:"date"`
	Day           string            `json:"day"`
	Shift         string            `json:"shift"`
	Corners       []string          `json:"corners"`
	Expected      []BucketRow       `json:"expected"`
	Present       []BucketRow       `json:"present"`
	ExpectedTotal engine.CountBlock `json:"expectedTotal"`
	PresentTotal  engine.CountBlock `json:"presentTotal"`
	Percent       string            `json:"percent"`
	Status        string            `json:"status"`
	// VacationExcluded is nil when no leave feed was supplied.
	VacationExcluded *int        `json:"vacationExcluded,omitempty"`
	Note             string      `json:"note,omitempty"`
	Warnings         []string    `json:"warnings"`
	Audit            Audit       `json:"audit"`
	Export           []ExportRow `json:"export,omitempty"`
}

// Build compiles an engine outcome into a Result. It groups the bucket counts
// in display order, computes the totals and percentage, then derives the audit
// panel and export rows from the same intermediate collections. The outcome is
// only read.
func Build(o *engine.Outcome, opts Options) *Result {
	r := &Result{
		RunID:    opts.RunID,
		Date:     o.Selection.Date.Format("2006-01-02"),
		Day:      o.Selection.DayName(),
		Shift:    o.Selection.Shift,
		Corners:  append([]string(nil), o.Codes...),
		Expected: make([]BucketRow, 0, len(o.Buckets)),
		Present:  make([]BucketRow, 0, len(o.Buckets)),
		Warnings: append([]string{}, opts.Warnings...),
	}

	for _, name := range o.Buckets {
		r.Expected = append(r.Expected, BucketRow{Bucket: name, CountBlock: o.ExpectedCounts[name]})
		r.Present = append(r.Present, BucketRow{Bucket: name, CountBlock: o.PresentCounts[name]})
	}
	r.ExpectedTotal = o.ExpectedCounts.Sum()
	r.PresentTotal = o.PresentCounts.Sum()
	r.Percent = Percent(r.PresentTotal.Total, r.ExpectedTotal.Total)

	r.Status = StatusWarn
	if r.PresentTotal.Total >= r.ExpectedTotal.Total {
		r.Status = StatusOK
	}

	if o.HasLeaveFeed() {
		excluded := len(o.VacationExcluded)
		r.VacationExcluded = &excluded
		r.Note = fmt.Sprintf("Expected = (Corner-filtered cohort) - (Vacation exclusions). Vacation excluded: %d", excluded)
		r.Warnings = append(r.Warnings, o.Vacation.Warnings...)
	}

	r.Warnings = append(r.Warnings, outcomeWarnings(o)...)
	r.Audit = BuildAudit(o, opts)
	r.Export = ExportRows(o)

	return r
}

// Percent formats present/expected*100 with one decimal. A zero expected
// total renders "0.0".
func Percent(present, expected int) string {
	if expected == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(present)/float64(expected)*100)
}

// outcomeWarnings lists the non-fatal data problems of a run.
func outcomeWarnings(o *engine.Outcome) []string {
	var warnings []string

	unknown := 0
	for _, p := range o.Scheduled {
		if p.EmploymentCategory == schema.CategoryUnknown {
			unknown++
		}
	}
	if unknown > 0 {
		warnings = append(warnings, fmt.Sprintf("found %d UNKNOWN employment types; update the classifier if needed", unknown))
	}

	if n := o.Enriched.Stats.UnparsedStartDates; n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d roster start dates could not be parsed; those people are never excluded as new hires", n))
	}
	if n := o.Enriched.Stats.EmptyIDs; n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d roster rows have no employee id and cannot match the time feed", n))
	}

	return warnings
}
