package schema

import (
	"regexp"
	"strings"
)

// Candidate header names per logical field, in preference order. Source files
// rename their columns from release to release, so every field accepts a few
// spellings.
var (
	RosterEmployeeID     = []string{"Employee ID", "Person Number", "Person ID", "Badge ID"}
	RosterDepartmentID   = []string{"Department ID", "Home Department ID", "Dept ID"}
	RosterManagementArea = []string{"Management Area ID", "Mgmt Area ID", "Area ID", "Area"}
	RosterEmploymentType = []string{"Employment Type", "Associate Type", "Worker Type", "Badge Type", "Company"}
	RosterShiftPattern   = []string{"Shift Pattern", "Schedule Pattern", "Shift"}
	RosterCorner         = []string{"Corner", "Corner Code"}
	RosterStartDate      = []string{"Employment Start Date", "Hire Date", "Start Date"}

	AttendancePersonID = []string{"Person ID", "Employee ID", "Person Number", "ID"}
	AttendanceOnPrem   = []string{"On Premises", "On Premises?", "OnPremises"}

	LeaveEmployeeID     = []string{"Employee ID", "Person ID", "Person Number", "Badge ID", "ID"}
	LeaveVacation       = []string{"Vacation"}
	LeaveVacationUnpaid = []string{"Vacation Unpaid"}
)

var (
	whitespaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)
	nonWordRe    = regexp.MustCompile(`[^\w? ]`)
)

// Canon canonicalizes a header name or free-text designation:
//  1. TrimSpace, ToLower
//  2. Collapse internal whitespace, including no-break spaces, to single spaces
//  3. Drop everything except word characters, spaces and question marks
func Canon(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRe.ReplaceAllString(s, " ")
	return nonWordRe.ReplaceAllString(s, "")
}

// ResolveHeader finds the column in headers that carries the logical field
// described by candidates. Headers are scanned in file order and the first
// canonical match wins. A second pass drops trailing question marks from the
// actual header, so "On Premises?" still resolves "On Premises".
// It returns the original header name, or false when nothing matches.
func ResolveHeader(headers []string, candidates []string) (string, bool) {
	wanted := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		wanted[Canon(c)] = struct{}{}
	}

	for _, h := range headers {
		if _, ok := wanted[Canon(h)]; ok {
			return h, true
		}
	}

	for _, h := range headers {
		ch := strings.TrimSpace(strings.TrimRight(Canon(h), "?"))
		if _, ok := wanted[ch]; ok {
			return h, true
		}
	}

	return "", false
}

// SuggestHeader returns the header closest to any candidate, for error
// messages about unresolvable columns. Only reasonably close headers are
// returned; otherwise the result is empty.
func SuggestHeader(headers []string, candidates []string) string {
	const minScore = 0.6

	best := ""
	bestScore := 0.0
	for _, h := range headers {
		ch := Canon(h)
		for _, c := range candidates {
			score := Similarity(ch, Canon(c))
			if score > bestScore {
				best, bestScore = h, score
			}
		}
	}
	if bestScore < minScore {
		return ""
	}
	return best
}
