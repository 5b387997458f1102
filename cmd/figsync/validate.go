package main

import (
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-figsync/pkg/figsync"
)

var (
	validateSchedule string
	validateReport   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the schedule, and optionally the report, without writing output",
	Long: `Validates the schedule and, when --report is given, pre-flights every
placeholder in the document against it.

Exit codes: 0 clean, 1 warnings only, 2 errors or fatals present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, fields, err := figsync.LoadScheduleOptions(validateSchedule, cfg.ScheduleOptions())
		if err != nil {
			return err
		}
		schedule, issues := figsync.ValidateSchedule(raw, fields, validateSchedule)

		if !figsync.HasFatal(issues) && validateReport != "" {
			doc, err := figsync.OpenReport(validateReport)
			if err != nil {
				return err
			}
			issues = append(issues, figsync.ValidateDocumentPlaceholders(doc, schedule)...)
		}

		printIssues(issues)
		if len(issues) == 0 && !quiet {
			successln("Validation passed, no issues found.")
		}

		switch {
		case figsync.HasErrors(issues):
			return exitCode(2)
		case figsync.HasWarnings(issues):
			return exitCode(1)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateSchedule, "schedule", "", "Path to the Excel schedule")
	validateCmd.Flags().StringVar(&validateReport, "report", "",
		"Path to a Word report to pre-flight against the schedule")
	validateCmd.MarkFlagRequired("schedule")
}
