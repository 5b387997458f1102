package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/benjaminschreck/go-figsync/pkg/figsync"
)

// All console output goes to stderr. Stdout is reserved for pipeable
// data such as the audit path and the schema dump.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffc107"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#8bc34a"))
	styleBold    = lipgloss.NewStyle().Bold(true)
	styleMuted   = lipgloss.NewStyle().Faint(true)
)

func errorln(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styleError.Render(fmt.Sprintf(format, args...)))
}

func successln(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styleSuccess.Render(fmt.Sprintf(format, args...)))
}

func infoln(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func severityStyle(severity figsync.Severity) lipgloss.Style {
	if severity == figsync.SeverityWarn {
		return styleWarn
	}
	return styleError
}

// printIssues writes one coloured line per validation issue.
func printIssues(issues []figsync.Issue) {
	for _, issue := range issues {
		fmt.Fprintln(os.Stderr, severityStyle(issue.Severity).Render(issue.String()))
	}
}

// renderTable lays rows out under a bold header with padded columns and
// a rule between header and body. Cells may carry their own styling.
func renderTable(title string, headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := styleBold.Padding(0, 1)

	var sb strings.Builder
	if title != "" {
		sb.WriteString(styleBold.Render(title))
		sb.WriteString("\n")
	}

	total := 0
	for i, h := range headers {
		sb.WriteString(headerStyle.Width(widths[i] + 2).Render(h))
		total += widths[i] + 2
	}
	sb.WriteString("\n")
	sb.WriteString(styleMuted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(cellStyle.Width(widths[i] + 2).Render(cell))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// printSummary shows the audit counters and, when present, the issue
// table for one engine run.
func printSummary(report *figsync.AuditReport) {
	okCell := styleSuccess.Render(strconv.Itoa(report.SubstitutionsOK()))

	errCell := styleSuccess.Render("0")
	if n := report.ErrorCount(); n > 0 {
		errCell = styleError.Bold(true).Render(strconv.Itoa(n))
	}
	warnCell := styleSuccess.Render("0")
	if n := report.WarnCount(); n > 0 {
		warnCell = styleWarn.Render(strconv.Itoa(n))
	}

	fmt.Fprintln(os.Stderr, renderTable("Audit Summary",
		[]string{"Placeholders Found", "Substitutions OK", "Errors", "Warnings"},
		[][]string{{strconv.Itoa(report.PlaceholdersFound()), okCell, errCell, warnCell}},
	))

	if len(report.Issues) == 0 {
		return
	}
	rows := make([][]string, 0, len(report.Issues))
	for _, issue := range report.Issues {
		rows = append(rows, []string{
			severityStyle(issue.Severity).Render(string(issue.Severity)),
			issue.Code,
			issue.Location,
			issue.Message,
		})
	}
	fmt.Fprintln(os.Stderr, renderTable("Issues",
		[]string{"Severity", "Code", "Location", "Message"}, rows))
}
