package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorSuccess = lipgloss.Color("#8BC34A")
	colorWarning = lipgloss.Color("#FFC107")
	colorMuted   = lipgloss.Color("#6B7280")

	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// RenderText renders the summary chips, both bucket tables and the audit pills
// for a terminal.
func RenderText(r *Result) string {
	var sb strings.Builder

	sb.WriteString(renderChips(r))
	sb.WriteString("\n\n")

	sb.WriteString(titleStyle.Render("Expected"))
	sb.WriteString("\n")
	sb.WriteString(renderCounts(r.Expected, BucketRow{Bucket: "Total", CountBlock: r.ExpectedTotal}))
	sb.WriteString("\n")
	if r.Note != "" {
		sb.WriteString(mutedStyle.Render(r.Note))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(titleStyle.Render("Present"))
	sb.WriteString("\n")
	sb.WriteString(renderCounts(r.Present, BucketRow{Bucket: "Total", CountBlock: r.PresentTotal}))
	sb.WriteString("\n\n")

	sb.WriteString(renderPills(r.Audit.Pills))
	sb.WriteString("\n")

	for _, w := range r.Warnings {
		sb.WriteString(lipgloss.NewStyle().Foreground(colorWarning).Render("warning: " + w))
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderChips(r *Result) string {
	presentColor := colorWarning
	if r.Status == StatusOK {
		presentColor = colorSuccess
	}

	chips := []string{
		fmt.Sprintf("Day: %s", titleStyle.Render(r.Day)),
		fmt.Sprintf("Shift: %s", titleStyle.Render(r.Shift)),
		fmt.Sprintf("Corners: %s", strings.Join(r.Corners, " ")),
		fmt.Sprintf("Expected Total: %s", titleStyle.Render(strconv.Itoa(r.ExpectedTotal.Total))),
		lipgloss.NewStyle().Foreground(presentColor).Render(
			fmt.Sprintf("Present Total: %d (%s%%)", r.PresentTotal.Total, r.Percent)),
	}
	if r.VacationExcluded != nil {
		chips = append(chips, fmt.Sprintf("Vacation excluded: %d", *r.VacationExcluded))
	}
	return strings.Join(chips, mutedStyle.Render("  |  "))
}

func renderCounts(rows []BucketRow, total BucketRow) string {
	data := make([][]string, 0, len(rows)+1)
	for _, row := range append(append([]BucketRow{}, rows...), total) {
		data = append(data, []string{
			row.Bucket,
			strconv.Itoa(row.AMZN),
			strconv.Itoa(row.TEMP),
			strconv.Itoa(row.Total),
			strconv.Itoa(row.Unknown),
		})
	}
	last := len(data) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("Department", "AMZN", "TEMP", "TOTAL", "UNKNOWN").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0 && row == last:
				return headerStyle
			case col == 0:
				return cellStyle
			case row == last:
				return numberStyle.Bold(true)
			default:
				return numberStyle
			}
		})
	return t.Render()
}

func renderPills(p Pills) string {
	pill := func(k string, v any) string {
		return fmt.Sprintf("%s: %v", titleStyle.Render(k), v)
	}
	pills := []string{
		pill("Roster rows", p.RosterRows),
		pill("Time feed rows", p.TimeFeedRows),
		pill("Leave rows", p.LeaveRows),
		pill("Vacation excluded", p.VacationExcluded),
		pill("ID matches", fmt.Sprintf("%d / %d", p.IDMatches, p.Scheduled)),
		pill("Corner filter", fmt.Sprintf("%d rows", p.AfterCorner)),
		pill("Present markers", strings.Join(p.PresentMarkers, " / ")),
	}
	return strings.Join(pills, mutedStyle.Render("  "))
}
