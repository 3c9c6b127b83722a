package engine

import (
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// VacationIndex marks identifiers with vacation hours booked in the leave feed.
type VacationIndex struct {
	OnLeave map[string]bool `json:"onLeave"`
	// Resolved headers; empty when the column was not found.
	IDColumn       string        `json:"idColumn"`
	VacationColumn string        `json:"vacationColumn"`
	UnpaidColumn   string        `json:"unpaidColumn"`
	Stats          VacationStats `json:"stats"`
	Warnings       []string      `json:"warnings,omitempty"`
}

// VacationStats contains aggregate statistics about the leave feed.
type VacationStats struct {
	TotalRows   int `json:"totalRows"`
	EmptyIDRows int `json:"emptyIdRows"`
	OnLeaveIDs  int `json:"onLeaveIds"`
}

// BuildVacationIndex constructs a VacationIndex from the leave table. The
// identifier, "Vacation" and "Vacation Unpaid" columns are each optional; a
// missing column contributes nothing and is reported in Warnings. An identifier
// is on leave when its vacation and unpaid vacation hours sum to more than zero.
func BuildVacationIndex(table *schema.Table) *VacationIndex {
	cols := columnResolver{feed: "leave", headers: table.Headers}
	index := &VacationIndex{
		OnLeave:        make(map[string]bool),
		IDColumn:       cols.optional(schema.LeaveEmployeeID),
		VacationColumn: cols.optional(schema.LeaveVacation),
		UnpaidColumn:   cols.optional(schema.LeaveVacationUnpaid),
	}
	index.Stats.TotalRows = len(table.Rows)

	if index.IDColumn == "" {
		index.Warnings = append(index.Warnings, cols.missing("Employee ID", schema.LeaveEmployeeID).Error()+"; no vacation exclusions applied")
		return index
	}
	switch {
	case index.VacationColumn == "" && index.UnpaidColumn == "":
		index.Warnings = append(index.Warnings, "leave file: no Vacation or Vacation Unpaid column; no vacation exclusions applied")
	case index.VacationColumn == "":
		index.Warnings = append(index.Warnings, "leave file: no Vacation column; only unpaid vacation counted")
	case index.UnpaidColumn == "":
		index.Warnings = append(index.Warnings, "leave file: no Vacation Unpaid column; only paid vacation counted")
	}

	for _, row := range table.Rows {
		id := schema.NormalizeID(row[index.IDColumn])
		if id == "" {
			index.Stats.EmptyIDRows++
			continue
		}

		var hours float64
		if index.VacationColumn != "" {
			hours += schema.ParseLocaleNumber(row[index.VacationColumn])
		}
		if index.UnpaidColumn != "" {
			hours += schema.ParseLocaleNumber(row[index.UnpaidColumn])
		}
		if hours > 0 {
			index.OnLeave[id] = true
		}
	}
	index.Stats.OnLeaveIDs = len(index.OnLeave)

	return index
}

// IsOnLeave reports whether id has vacation booked. A nil index (no leave feed
// supplied) marks nobody.
func (idx *VacationIndex) IsOnLeave(id string) bool {
	if idx == nil || id == "" {
		return false
	}
	return idx.OnLeave[id]
}
