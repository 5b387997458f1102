package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-figsync/pkg/figsync"
)

var (
	demoOutputDir string
	demoAssets    int
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Write a demo schedule and report for immediate testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if demoAssets < 1 {
			demoAssets = 1
		}
		if demoAssets > len(figsync.DemoAssets) {
			demoAssets = len(figsync.DemoAssets)
		}
		if err := os.MkdirAll(demoOutputDir, 0o755); err != nil {
			return err
		}

		assets := figsync.DemoAssets[:demoAssets]
		schedulePath := filepath.Join(demoOutputDir, "schedule.xlsx")
		reportPath := filepath.Join(demoOutputDir, "report.docx")

		if err := figsync.WriteDemoSchedule(schedulePath, assets); err != nil {
			return err
		}
		if err := figsync.WriteDemoReport(reportPath, assets); err != nil {
			return err
		}

		successln("Demo files written:")
		infoln("  Schedule: %s", schedulePath)
		infoln("  Report:   %s", reportPath)
		infoln("")
		infoln("Run: %s", styleBold.Render(
			"figsync sync --schedule "+schedulePath+" --report "+reportPath))
		return nil
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoOutputDir, "output-dir", "./demo", "Directory to write demo files")
	demoCmd.Flags().IntVar(&demoAssets, "assets", len(figsync.DemoAssets),
		"Number of demo assets to include")
}
