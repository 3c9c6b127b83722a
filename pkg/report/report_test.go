package report

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katpally123/attendance-dashboard/pkg/config"
	"github.com/katpally123/attendance-dashboard/pkg/engine"
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

const testSettings = `{
  "departments": {
    "Inbound": {"dept_ids": ["1211010", "1211030"]},
    "ICQA": {"dept_ids": ["1299070"], "management_area_id": "27"},
    "CRETs": {"dept_ids": ["1299010"]}
  },
  "shift_schedule": {"Day": {"Monday": ["AM"]}}
}`

var monday = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func feedTable(headers []string, rows ...[]string) *schema.Table {
	t := &schema.Table{Name: "test", Headers: headers}
	for _, r := range rows {
		row := make(schema.Row, len(headers))
		for i, h := range headers {
			row[h] = r[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func testOutcome(t *testing.T, withLeave bool) *engine.Outcome {
	t.Helper()

	settings, err := config.ParseSettings([]byte(testSettings))
	require.NoError(t, err)

	feeds := engine.Feeds{
		Roster: feedTable(
			[]string{"Employee ID", "Department ID", "Management Area ID", "Employment Type", "Shift Pattern", "Employment Start Date"},
			[]string{"0042", "1211030", "", "Seasonal", "AM1X", "2024-01-01"},
			[]string{"100", "1211010", "", "Full Time", "AM1X", "2023-01-01"},
			[]string{"101", "1211010", "", "Full Time", "AM2X", ""},
			[]string{"102", "1299070", "27", "Blue Badge", "AM1X", ""},
			[]string{"103", "1299070", "99", "Seasonal", "AM1X", ""},
			[]string{"104", "1211010", "", "Full Time", "PM1X", ""},
			[]string{"105", "1299010", "", "xyz", "AM1X", ""},
		),
		Attendance: feedTable(
			[]string{"Person ID", "On Premises"},
			[]string{"42", "X"},
			[]string{"100", "X"},
			[]string{"101", ""},
			[]string{"102", "X"},
			[]string{"105", "X"},
			[]string{"999", "X"},
		),
	}
	if withLeave {
		feeds.Leave = feedTable(
			[]string{"Employee ID", "Vacation", "Vacation Unpaid"},
			[]string{"101", "8", "0"},
			[]string{"102", "0", "4"},
		)
	}

	out, err := engine.Reconcile(settings, feeds, engine.Selection{Date: monday, Shift: "Day"})
	require.NoError(t, err)
	return out
}

func TestBuild(t *testing.T) {
	t.Parallel()

	r := Build(testOutcome(t, true), Options{RunID: "run-1", Warnings: []string{"roster.csv row 3: padded"}})

	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, "2024-01-01", r.Date)
	assert.Equal(t, "Monday", r.Day)
	assert.Equal(t, "Day", r.Shift)
	assert.Equal(t, []string{"AM"}, r.Corners)

	wantExpected := []BucketRow{
		{Bucket: "Inbound", CountBlock: engine.CountBlock{AMZN: 1, Total: 1}},
		{Bucket: "DA", CountBlock: engine.CountBlock{TEMP: 1, Total: 1}},
		{Bucket: "ICQA", CountBlock: engine.CountBlock{}},
		{Bucket: "CRETs", CountBlock: engine.CountBlock{Unknown: 1}},
	}
	if diff := cmp.Diff(wantExpected, r.Expected); diff != "" {
		t.Errorf("expected rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, engine.CountBlock{AMZN: 1, TEMP: 1, Total: 2, Unknown: 1}, r.ExpectedTotal)
	assert.Equal(t, engine.CountBlock{AMZN: 2, TEMP: 1, Total: 3, Unknown: 1}, r.PresentTotal)
	assert.Equal(t, "150.0", r.Percent)
	assert.Equal(t, StatusOK, r.Status)

	require.NotNil(t, r.VacationExcluded)
	assert.Equal(t, 2, *r.VacationExcluded)
	assert.Equal(t, "Expected = (Corner-filtered cohort) - (Vacation exclusions). Vacation excluded: 2", r.Note)

	require.Len(t, r.Warnings, 2)
	assert.Equal(t, "roster.csv row 3: padded", r.Warnings[0])
	assert.Contains(t, r.Warnings[1], "found 1 UNKNOWN employment types")
	assert.Len(t, r.Export, 6)
}

func TestBuildWithoutLeave(t *testing.T) {
	t.Parallel()

	r := Build(testOutcome(t, false), Options{})
	assert.Nil(t, r.VacationExcluded)
	assert.Empty(t, r.Note)
	assert.Nil(t, r.Audit.Leave)
	assert.Equal(t, engine.CountBlock{AMZN: 3, TEMP: 1, Total: 4, Unknown: 1}, r.ExpectedTotal)
	assert.Equal(t, "75.0", r.Percent)
	assert.Equal(t, StatusWarn, r.Status)
}

func TestPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.0", Percent(0, 0))
	assert.Equal(t, "0.0", Percent(5, 0))
	assert.Equal(t, "50.0", Percent(1, 2))
	assert.Equal(t, "33.3", Percent(1, 3))
	assert.Equal(t, "66.7", Percent(2, 3))
}

func TestBuildAudit(t *testing.T) {
	t.Parallel()

	a := BuildAudit(testOutcome(t, true), Options{})

	assert.Equal(t, Pills{
		RosterRows:       7,
		TimeFeedRows:     6,
		LeaveRows:        2,
		VacationExcluded: 2,
		IDMatches:        5,
		Scheduled:        6,
		AfterCorner:      6,
		PresentMarkers:   []string{"X"},
	}, a.Pills)

	assert.Equal(t, engine.SeveritySummary{High: 1, Medium: 1, Low: 1, Info: 1, Clean: 2}, a.Severity)
	assert.Equal(t, engine.Unrostered{Count: 1, Sample: []string{"999"}}, a.Unrostered)
	require.NotNil(t, a.Leave)
	assert.Equal(t, 2, a.Leave.OnLeaveIDs)

	assert.Equal(t, []ValueCount{{"AM", 6}, {"PM", 1}}, a.Distributions.Corner)
	assert.Equal(t, []ValueCount{{"(blank)", 4}, {"27", 1}, {"99", 1}}, a.Distributions.Area)
	assert.Equal(t, []ValueCount{{"X", 5}, {"(blank)", 1}}, a.Markers)

	inbound := a.Samples["Inbound"]
	require.NotNil(t, inbound)
	assert.Len(t, inbound, 6)
	assert.Equal(t, []string{"100"}, sampleIDs(inbound[SampleExpectedTotal]))
	assert.Equal(t, []string{"100"}, sampleIDs(inbound[SamplePresentTotal]))
	assert.NotNil(t, inbound[SampleExpectedTEMP])
	assert.Empty(t, inbound[SampleExpectedTEMP])
	assert.Equal(t, []string{"42"}, sampleIDs(a.Samples["DA"][SampleExpectedTEMP]))
	assert.Equal(t, []string{"102"}, sampleIDs(a.Samples["ICQA"][SamplePresentAMZN]))
	assert.Empty(t, a.Samples["ICQA"][SampleExpectedTotal])
}

func TestBuildAuditConflicts(t *testing.T) {
	t.Parallel()

	settings, err := config.ParseSettings([]byte(testSettings))
	require.NoError(t, err)
	out, err := engine.Reconcile(settings, engine.Feeds{
		Roster: feedTable(
			[]string{"Employee ID", "Department ID", "Employment Type", "Shift Pattern", "Corner"},
			[]string{"100", "1211010", "Full Time", "PM1X", "AM"},
			[]string{"101", "1211010", "Full Time", "AM1X", "AM"},
		),
		Attendance: feedTable([]string{"Person ID", "On Premises"}, []string{"100", "X"}),
	}, engine.Selection{Date: monday, Shift: "Day"})
	require.NoError(t, err)

	a := BuildAudit(out, Options{})
	require.Len(t, a.Conflicts, 1)
	c := a.Conflicts[0]
	assert.Equal(t, "100", c.EmployeeID)
	assert.Equal(t, "corner", c.Field)
	assert.Equal(t, "AM", c.ColumnValue)
	assert.Equal(t, "PM", c.DerivedValue)
	assert.Equal(t, "column_wins", c.Resolution)

	clean := BuildAudit(testOutcome(t, false), Options{})
	assert.NotNil(t, clean.Conflicts)
	assert.Empty(t, clean.Conflicts)
}

func TestBuildAuditSampleLimit(t *testing.T) {
	t.Parallel()

	a := BuildAudit(testOutcome(t, true), Options{SampleLimit: 1})
	for bucket, cells := range a.Samples {
		for key, rows := range cells {
			assert.LessOrEqual(t, len(rows), 1, "%s/%s", bucket, key)
		}
	}
}

func sampleIDs(rows []Sample) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.EmployeeID)
	}
	return out
}

func TestTopValues(t *testing.T) {
	t.Parallel()

	counts := map[string]int{"b": 2, "a": 2, "c": 5, "": 1, "d": 1}
	assert.Equal(t, []ValueCount{{"c", 5}, {"a", 2}, {"b", 2}}, TopValues(counts, 3))
	assert.Len(t, TopValues(counts, 0), 5)
	assert.Empty(t, TopValues(nil, 3))
}
