package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katpally123/attendance-dashboard/pkg/config"
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

const testSettings = `{
  "present_markers": ["X"],
  "departments": {
    "Inbound": {"dept_ids": ["1211010", "1211020", "1211030"]},
    "ICQA": {"dept_ids": ["1299070"], "management_area_id": "27"},
    "CRETs": {"dept_ids": ["1299010"]}
  },
  "shift_schedule": {
    "Day": {"Monday": ["AM"], "Tuesday": []}
  }
}`

// monday is 2024-01-01.
var monday = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func mustSettings(t *testing.T) config.Settings {
	t.Helper()
	s, err := config.ParseSettings([]byte(testSettings))
	require.NoError(t, err)
	return s
}

func table(headers []string, rows ...[]string) *schema.Table {
	t := &schema.Table{Name: "test", Headers: headers}
	for _, r := range rows {
		row := make(schema.Row, len(headers))
		for i, h := range headers {
			if i < len(r) {
				row[h] = r[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func rosterTable() *schema.Table {
	return table(
		[]string{"Employee ID", "Department ID", "Management Area ID", "Employment Type", "Shift Pattern", "Employment Start Date"},
		[]string{"0042", "1211030", "", "Seasonal", "AM1X", "2024-01-01"},
		[]string{"100", "1211010", "", "Full Time", "AM1X", "2023-01-01"},
		[]string{"101", "1211010", "", "Full Time", "AM2X", ""},
		[]string{"102", "1299070", "27", "Blue Badge", "AM1X", ""},
		[]string{"103", "1299070", "99", "Seasonal", "AM1X", ""},
		[]string{"104", "1211010", "", "Full Time", "PM1X", ""},
		[]string{"105", "1299010", "", "xyz", "AM1X", ""},
	)
}

func attendanceTable() *schema.Table {
	return table(
		[]string{"Person ID", "On Premises"},
		[]string{"42", "X"},
		[]string{"042", ""},
		[]string{"100", " x "},
		[]string{"101", ""},
		[]string{"102", "X"},
		[]string{"105", "X"},
		[]string{"999", "X"},
		[]string{"", "X"},
	)
}

func leaveTable() *schema.Table {
	return table(
		[]string{"Employee ID", "Vacation", "Vacation Unpaid"},
		[]string{"101", "8", "0"},
		[]string{"102", "0", "4"},
		[]string{"100", "0", "0"},
	)
}

func testFeeds() Feeds {
	return Feeds{Roster: rosterTable(), Attendance: attendanceTable(), Leave: leaveTable()}
}

func ids(people []schema.EnrichedPerson) []string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		out = append(out, p.EmployeeID)
	}
	return out
}
