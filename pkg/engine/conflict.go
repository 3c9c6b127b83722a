package engine

import (
	"strings"

	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// FieldConflict represents a disagreement between two roster columns that
// describe the same fact. Resolution is always "column_wins": the explicit
// column takes precedence over the derived value.
type FieldConflict struct {
	Field        string `json:"field"`
	ColumnValue  string `json:"columnValue"`
	DerivedValue string `json:"derivedValue"`
	Resolution   string `json:"resolution"` // always "column_wins"
}

// DetectConflicts compares the explicit corner column with the corner derived
// from the shift pattern. Only a roster carrying both can disagree.
func DetectConflicts(p schema.EnrichedPerson) []FieldConflict {
	var conflicts []FieldConflict

	derived := schema.CornerCode(p.ShiftPattern)
	if derived != "" && p.CornerCode != "" && !strings.EqualFold(derived, p.CornerCode) {
		conflicts = append(conflicts, FieldConflict{
			Field:        "corner",
			ColumnValue:  p.CornerCode,
			DerivedValue: derived,
			Resolution:   "column_wins",
		})
	}

	return conflicts
}
