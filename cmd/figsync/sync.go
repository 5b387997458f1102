package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-figsync/pkg/figsync"
)

var (
	syncSchedule string
	syncReport   string
	syncOutput   string
	syncAudit    string
	syncNoAudit  bool
	syncStrict   bool
	syncWatch    bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Read the schedule, substitute placeholders, write the synced report",
	Long: `Loads and validates the schedule, replaces every placeholder in the
report with its formatted figure, and writes the synced document plus a
JSON audit trail.

Exit codes: 0 clean, 1 substitution errors occurred, 2 aborted before
producing output (or any error under --strict).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if syncOutput == "" {
			syncOutput = defaultOutputPath(syncReport)
		}
		if !cmd.Flags().Changed("audit") {
			syncAudit = cfg.AuditFile
		}
		if syncWatch {
			return watchAndSync()
		}
		code, err := syncOnce()
		if err != nil {
			return err
		}
		if code != 0 {
			return exitCode(code)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncSchedule, "schedule", "", "Path to the Excel schedule")
	syncCmd.Flags().StringVar(&syncReport, "report", "", "Path to the input Word report")
	syncCmd.Flags().StringVar(&syncOutput, "output", "",
		"Path for the output document (default: <report>_synced.docx)")
	syncCmd.Flags().StringVar(&syncAudit, "audit", "audit.json", "Path for the audit JSON")
	syncCmd.Flags().BoolVar(&syncNoAudit, "no-audit", false, "Skip writing the audit file")
	syncCmd.Flags().BoolVar(&syncStrict, "strict", false, "Abort on any ERROR, not just FATAL")
	syncCmd.Flags().BoolVar(&syncWatch, "watch", false,
		"Keep running, re-syncing whenever the schedule or report changes")
	syncCmd.MarkFlagRequired("schedule")
	syncCmd.MarkFlagRequired("report")
}

func defaultOutputPath(report string) string {
	return strings.TrimSuffix(report, filepath.Ext(report)) + "_synced.docx"
}

// syncOnce runs the full pipeline once and returns the exit code for its
// outcome. A non-nil error means the run broke before reaching a verdict
// and the caller should surface it instead.
func syncOnce() (int, error) {
	raw, fields, err := figsync.LoadScheduleOptions(syncSchedule, cfg.ScheduleOptions())
	if err != nil {
		return 0, err
	}
	schedule, issues := figsync.ValidateSchedule(raw, fields, syncSchedule)
	printIssues(issues)

	if figsync.HasFatal(issues) {
		errorln("Fatal validation errors, aborting.")
		return 2, nil
	}
	if syncStrict && figsync.HasErrors(issues) {
		errorln("Errors in schedule (strict mode), aborting.")
		return 2, nil
	}

	doc, err := figsync.OpenReport(syncReport)
	if err != nil {
		return 0, err
	}

	report := figsync.NewAuditReport()
	figsync.Substitute(doc, schedule, report)

	if err := doc.Save(syncOutput); err != nil {
		return 0, err
	}
	if !quiet {
		successln("Output written: %s", syncOutput)
	}

	if !syncNoAudit {
		if err := report.WriteAudit(syncAudit, syncSchedule, syncReport, syncOutput); err != nil {
			return 0, err
		}
		// The audit path is the one thing on stdout, for piping.
		fmt.Println(syncAudit)
	}

	if !quiet {
		printSummary(report)
	}

	switch {
	case syncStrict && report.ErrorCount() > 0:
		return 2, nil
	case report.ErrorCount() > 0:
		return 1, nil
	}
	return 0, nil
}
