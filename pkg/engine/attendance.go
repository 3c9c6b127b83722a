package engine

import (
	"strings"

	"github.com/katpally123/attendance-dashboard/pkg/config"
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// AttendanceIndex maps normalized person identifiers to "on premises" for the
// time-and-attendance feed.
type AttendanceIndex struct {
	// Present holds every identifier sighted in the feed. A person sighted
	// present on any row is present; sighted only otherwise maps to false.
	Present map[string]bool `json:"present"`
	// MarkerCounts is the histogram of raw presence values (upper-cased, trimmed).
	MarkerCounts map[string]int `json:"markerCounts"`
	// Columns records which headers were resolved.
	PersonColumn string          `json:"personColumn"`
	MarkerColumn string          `json:"markerColumn"`
	Stats        AttendanceStats `json:"stats"`
}

// AttendanceStats contains aggregate statistics about the attendance feed.
type AttendanceStats struct {
	TotalRows     int `json:"totalRows"`
	EmptyIDRows   int `json:"emptyIdRows"`
	UniqueIDs     int `json:"uniqueIds"`
	PresentIDs    int `json:"presentIds"`
	DuplicateRows int `json:"duplicateRows"`
}

// BuildAttendanceIndex constructs an AttendanceIndex from the attendance table.
// For each row the identifier is normalized and the marker upper-cased and
// trimmed; the present flag is OR-ed into any existing entry so repeated
// sightings never turn a present person absent. Rows without an identifier
// still count toward the marker histogram.
func BuildAttendanceIndex(table *schema.Table, settings config.Settings) (*AttendanceIndex, error) {
	cols := columnResolver{feed: "time feed", headers: table.Headers}
	personCol, err := cols.required("Person ID", schema.AttendancePersonID)
	if err != nil {
		return nil, err
	}
	markerCol, err := cols.required("On Premises", schema.AttendanceOnPrem)
	if err != nil {
		return nil, err
	}

	index := &AttendanceIndex{
		Present:      make(map[string]bool, len(table.Rows)),
		MarkerCounts: make(map[string]int),
		PersonColumn: personCol,
		MarkerColumn: markerCol,
	}

	for _, row := range table.Rows {
		id := schema.NormalizeID(row[personCol])
		marker := strings.ToUpper(strings.TrimSpace(row[markerCol]))
		index.MarkerCounts[marker]++

		if id == "" {
			index.Stats.EmptyIDRows++
			continue
		}

		prev, seen := index.Present[id]
		if seen {
			index.Stats.DuplicateRows++
		}
		index.Present[id] = prev || settings.IsPresentMarker(marker)
	}

	index.Stats.TotalRows = len(table.Rows)
	index.Stats.UniqueIDs = len(index.Present)
	for _, present := range index.Present {
		if present {
			index.Stats.PresentIDs++
		}
	}

	return index, nil
}

// IsPresent reports whether id was sighted on premises. Unknown ids are absent.
func (idx *AttendanceIndex) IsPresent(id string) bool {
	if idx == nil || id == "" {
		return false
	}
	return idx.Present[id]
}

// Seen reports whether id appears in the feed at all, present or not.
func (idx *AttendanceIndex) Seen(id string) bool {
	if idx == nil || id == "" {
		return false
	}
	_, ok := idx.Present[id]
	return ok
}
