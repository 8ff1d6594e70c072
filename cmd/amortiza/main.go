package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/erickbogarin/amortiza/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the settings and logger shared by every subcommand
type app struct {
	settingsPath string
	logLevel     string

	settings *config.Settings
	logger   *zap.Logger
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(a.settingsPath)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(settings.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.settings = settings
	a.logger = logger
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "amortiza",
		Short: "Loan amortization simulator",
		Long: "Simulates SAC and PRICE loan schedules with and without extra payments\n" +
			"and reports how many months and how much interest the extras save.",
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		PersistentPostRun: func(*cobra.Command, []string) { a.close() },
	}
	root.PersistentFlags().StringVar(&a.settingsPath, "config", "", "Settings file (default ./amortiza.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")

	root.AddCommand(
		simulateCmd(a),
		scheduleCmd(a),
		validateCmd(a),
		serveCmd(a),
		historyCmd(a),
		compareCmd(a),
		solveCmd(a),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// settings are not needed to print the version
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "amortiza %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
