package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRequiredColumn is wrapped by MissingColumnError.
	ErrMissingRequiredColumn = errors.New("missing required column")
	// ErrNoScheduleForSelection is wrapped by NoScheduleError.
	ErrNoScheduleForSelection = errors.New("no shift codes configured for selection")
)

// MissingColumnError reports a logical field that no header in a feed resolves to.
type MissingColumnError struct {
	Feed       string   `json:"feed"`
	Field      string   `json:"field"`
	Candidates []string `json:"candidates"`
	Suggestion string   `json:"suggestion,omitempty"`
}

func (e *MissingColumnError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s file: missing %s column (expected one of: %s)",
		e.Feed, e.Field, strings.Join(e.Candidates, ", "))
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "; closest header is %q", e.Suggestion)
	}
	return b.String()
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingRequiredColumn }

// NoScheduleError reports a day/shift selection with no configured corner codes.
type NoScheduleError struct {
	Day   string `json:"day"`
	Shift string `json:"shift"`
}

func (e *NoScheduleError) Error() string {
	return fmt.Sprintf("no shift codes configured for %s on %s; pick another date or shift", e.Shift, e.Day)
}

func (e *NoScheduleError) Unwrap() error { return ErrNoScheduleForSelection }
