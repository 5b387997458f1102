package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-figsync/pkg/figsync"
)

var (
	infoSchedulePath string
	infoAuditSchema  bool
)

var formatSpecRows = [][]string{
	{"£,0", "GBP, thousands separators, whole pounds"},
	{"£,0.00", "GBP, thousands separators, 2 decimal places"},
	{"£m", "GBP millions, 1 decimal place"},
	{"£m2dp", "GBP millions, 2 decimal places"},
	{"0%", "Percentage (value x 100), whole percent"},
	{"0.00%", "Percentage, one decimal place per zero after the dot"},
	{"#,##0", "Plain number, thousands separators"},
	{"#,##0.00", "Plain number, 2 decimal places"},
	{"#,##0 <suffix>", "Plain number plus a literal suffix, e.g. sq ft"},
	{"psf", "GBP per square foot, whole pounds"},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show version, supported format specs, and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if infoAuditSchema {
			// Schema goes to stdout so it can be piped into tooling.
			fmt.Println(figsync.AuditSchemaJSON())
			return nil
		}

		infoln("%s %s", styleBold.Render("figsync"), version)
		infoln("")
		fmt.Fprintln(os.Stderr, renderTable("Format specs", []string{"Spec", "Meaning"}, formatSpecRows))

		infoln("%s", styleBold.Render("Configuration"))
		infoln("  Sheet name:      %s", cfg.SheetName)
		infoln("  Key column:      %s", cfg.KeyColumn)
		infoln("  Name column:     %s", cfg.NameColumn)
		if len(cfg.FieldColumns) > 0 {
			infoln("  Field columns:   %s", strings.Join(cfg.FieldColumns, ", "))
		} else {
			infoln("  Field columns:   (all non-identity columns)")
		}
		infoln("  Currency symbol: %s", cfg.CurrencySymbol)
		infoln("  Audit file:      %s", cfg.AuditFile)
		infoln("  Config file:     --config PATH or ./%s", figsync.ConfigFileName)

		if infoSchedulePath != "" {
			infoln("")
			return printScheduleSummary(infoSchedulePath)
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().StringVar(&infoSchedulePath, "schedule", "",
		"Summarise the schedule at this path: assets, fields, values")
	infoCmd.Flags().BoolVar(&infoAuditSchema, "audit-schema", false,
		"Print the audit report JSON schema and exit")
}

func printScheduleSummary(path string) error {
	raw, fields, err := figsync.LoadScheduleOptions(path, cfg.ScheduleOptions())
	if err != nil {
		return err
	}
	schedule, issues := figsync.ValidateSchedule(raw, fields, path)

	if schedule.Len() == 0 {
		errorln("No valid assets found.")
		printIssues(issues)
		return exitCode(1)
	}

	infoln("%s %s", styleBold.Render("Schedule:"), path)
	infoln("%s  %d", styleBold.Render("Assets:"), schedule.Len())
	infoln("%s  %s", styleBold.Render("Fields:"), strings.Join(schedule.Fields(), ", "))
	infoln("")

	headers := append([]string{cfg.KeyColumn}, schedule.Fields()...)
	rows := make([][]string, 0, schedule.Len())
	for _, key := range schedule.Keys() {
		row := []string{key}
		for _, field := range schedule.Fields() {
			if v, ok := schedule.Value(key, field); ok {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				row = append(row, styleMuted.Render("-"))
			}
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(os.Stderr, renderTable("Asset Summary", headers, rows))

	if len(issues) > 0 {
		infoln("%d validation issue(s):", len(issues))
		printIssues(issues)
	}
	return nil
}
