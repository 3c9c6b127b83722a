package engine

import (
	"math"
	"slices"
	"time"

	"github.com/katpally123/attendance-dashboard/pkg/config"
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// DefaultNewHireDays is the minimum tenure, in whole days, to be expected on shift.
const DefaultNewHireDays = 3

// Selection is the caller's choice of date and shift plus the optional filters.
type Selection struct {
	Date            time.Time `json:"date"`
	Shift           string    `json:"shift"`
	ExcludeNewHires bool      `json:"excludeNewHires"`
	// NewHireDays overrides DefaultNewHireDays when positive.
	NewHireDays int `json:"newHireDays,omitempty"`
}

// DayName returns the English weekday of the selected date ("Monday", ...).
func (s Selection) DayName() string {
	return s.Date.Weekday().String()
}

func (s Selection) newHireDays() int {
	if s.NewHireDays > 0 {
		return s.NewHireDays
	}
	return DefaultNewHireDays
}

// ShiftCodes returns the corner codes configured for the selection, or a
// NoScheduleError when there are none.
func ShiftCodes(settings config.Settings, sel Selection) ([]string, error) {
	codes := settings.CodesFor(sel.Shift, sel.DayName())
	if len(codes) == 0 {
		return nil, &NoScheduleError{Day: sel.DayName(), Shift: sel.Shift}
	}
	return codes, nil
}

// FilterCorner keeps people whose corner code is one of codes.
func FilterCorner(people []schema.EnrichedPerson, codes []string) []schema.EnrichedPerson {
	out := make([]schema.EnrichedPerson, 0, len(people))
	for _, p := range people {
		if slices.Contains(codes, p.CornerCode) {
			out = append(out, p)
		}
	}
	return out
}

// FilterNewHires drops people who started fewer than minDays whole days before
// the selected date. People without a parseable start date are kept.
func FilterNewHires(people []schema.EnrichedPerson, date time.Time, minDays int) []schema.EnrichedPerson {
	dayStart := schema.MidnightUTC(date)
	out := make([]schema.EnrichedPerson, 0, len(people))
	for _, p := range people {
		if !p.HasStartDate() || TenureDays(dayStart, *p.EmploymentStartDate) >= minDays {
			out = append(out, p)
		}
	}
	return out
}

// TenureDays returns the whole-day difference between dayStart and start,
// rounded down. Start dates after dayStart give negative values.
func TenureDays(dayStart, start time.Time) int {
	return int(math.Floor(dayStart.Sub(start).Hours() / 24))
}

// SplitVacation separates the people on leave from the rest. The kept slice is
// the expected cohort; the excluded count is reported alongside it.
func SplitVacation(people []schema.EnrichedPerson) (kept, onLeave []schema.EnrichedPerson) {
	kept = make([]schema.EnrichedPerson, 0, len(people))
	for _, p := range people {
		if p.IsOnLeave {
			onLeave = append(onLeave, p)
			continue
		}
		kept = append(kept, p)
	}
	return kept, onLeave
}
