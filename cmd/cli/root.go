// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"job-tracker/internal/config"
	"job-tracker/internal/logger"
	"job-tracker/internal/tracker"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
	dimColor        = color.New(color.Faint)
	headerColor     = color.New(color.Bold)

	appliedColor   = color.New(color.FgCyan)
	interviewColor = color.New(color.FgYellow)
	offerColor     = color.New(color.FgGreen)
	rejectedColor  = color.New(color.FgRed)
)

// app carries the per-invocation state shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	dataFlag string
	logFlag  string
	verbose  bool

	dataPath string
	logPath  string
	log      *slog.Logger
	closer   io.Closer

	// started is set once flags parsed and setup succeeded; errors before
	// that point are usage errors from cobra itself.
	started bool
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jt",
		Short: "Job application tracker",
		Long: `A command-line tool for tracking job applications.

Applications are stored in a CSV file (default ~/.local/share/job-tracker/applications.csv).
The location can be changed in ~/.config/job-tracker/config.yaml, with the
JOBTRACKER_DATA_PATH environment variable or with --data.

Run without arguments to browse applications interactively.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dataFlag, "data", "", "path to the applications CSV file")
	rootCmd.PersistentFlags().StringVar(&a.logFlag, "log-file", "", "path to the diagnostic log file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "also write log records to stderr")
	// Accept --date_applied as well as --date-applied.
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newSummaryCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	return rootCmd
}

// resolvePaths computes the data and log paths from flags, environment and
// config file, in that order of precedence.
func (a *app) resolvePaths() (config.Config, error) {
	cfg, err := config.Resolve(a.dataFlag, a.logFlag)
	if err != nil {
		return config.Config{}, tracker.Errorf(tracker.KindInvalidArgument, "error loading configuration: %w", err)
	}
	if a.dataPath, err = cfg.ResolvedDataPath(); err != nil {
		return config.Config{}, err
	}
	if a.logPath, err = cfg.ResolvedLogPath(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (a *app) setup() error {
	cfg, err := a.resolvePaths()
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		errorColor.Fprintf(a.stderr, "Warning: %v. Using info.\n", err)
	}

	opts := logger.Options{FilePath: a.logPath, Level: level, Warnings: a.stderr}
	if a.verbose {
		opts.Console = a.stderr
	}
	a.log, a.closer = logger.New(opts)
	a.started = true
	a.log.Debug("Configuration resolved", "data", a.dataPath, "log", a.logPath)
	return nil
}

func (a *app) close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

func (a *app) openStore() (*tracker.Store, error) {
	return tracker.Open(a.dataPath, a.log)
}

// report prints err as a single line. Expected failures are shown verbatim;
// anything else is logged in full and reported generically.
func (a *app) report(err error) {
	switch {
	case tracker.IsUserFacing(err):
		if a.log != nil {
			a.log.Warn("Command failed", "kind", tracker.KindOf(err).String(), "error", err)
		}
		errorColor.Fprintf(a.stderr, "Error: %v\n", err)
	case !a.started:
		errorColor.Fprintf(a.stderr, "Error: %v\n", err)
		dimColor.Fprintln(a.stderr, "Run 'jt --help' for usage.")
	default:
		a.log.Error("Unhandled error", "error", err)
		errorColor.Fprintf(a.stderr, "Error: unexpected failure. Check %s\n", a.logPath)
	}
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	defer a.close()

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		a.report(err)
		return 1
	}
	return 0
}

func RunCLI() {
	os.Exit(Execute(os.Args[1:], os.Stdout, os.Stderr))
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-13s %s\n", label+":", value)
}
