package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benjaminschreck/go-figsync/pkg/figsync"
)

const version = "0.1.0"

var (
	cfgPath string
	verbose bool
	quiet   bool

	cfg    *figsync.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:     "figsync",
	Short:   "Synchronise schedule figures into Word report placeholders",
	Version: version,
	Long: `figsync reads numeric figures from an Excel schedule and substitutes
them into {{FIELD:ASSET_ID:FORMAT}} placeholders in Word reports,
producing a synced document plus a JSON audit trail of every
substitution and failure.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = figsync.LoadConfig(cfgPath)
		if err != nil {
			return err
		}

		level := figsync.ParseLevel(cfg.LogLevel)
		if verbose {
			level = zapcore.DebugLevel
		}
		if quiet {
			level = zapcore.ErrorLevel
		}
		logger, err = figsync.NewLogger(level, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		figsync.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"Path to "+figsync.ConfigFileName+" (default: look in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress console output except errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(infoCmd)
}
