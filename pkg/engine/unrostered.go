package engine

import (
	"sort"

	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// Unrostered lists identifiers marked on premises in the time feed that match
// no roster row. They are invisible to every count, so the audit surfaces them.
type Unrostered struct {
	Count  int      `json:"count"`
	Sample []string `json:"sample"`
}

// FindUnrostered compares the present identifiers of the attendance index with
// the roster. Sample is sorted and bounded by limit.
func FindUnrostered(attendance *AttendanceIndex, roster []schema.EnrichedPerson, limit int) Unrostered {
	onRoster := make(map[string]struct{}, len(roster))
	for _, p := range roster {
		if p.EmployeeID != "" {
			onRoster[p.EmployeeID] = struct{}{}
		}
	}

	var ids []string
	for id, present := range attendance.Present {
		if !present {
			continue
		}
		if _, ok := onRoster[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	result := Unrostered{Count: len(ids), Sample: make([]string, 0)}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	result.Sample = append(result.Sample, ids...)
	return result
}
