// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"job-tracker/internal/config"
	"job-tracker/internal/logger"
	"job-tracker/internal/tracker"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage job-tracker configuration",
		Long: `Provides subcommands to inspect and change the job-tracker configuration
stored in ~/.config/job-tracker/config.yaml.

Values can be overridden per invocation with JOBTRACKER_DATA_PATH,
JOBTRACKER_LOG_PATH and JOBTRACKER_LOG_LEVEL (also read from a .env file in
the working directory) or with the --data and --log-file flags.`,
	}

	configCmd.AddCommand(newConfigShowCmd(a))
	configCmd.AddCommand(newConfigGetDataPathCmd(a))
	configCmd.AddCommand(newConfigSetDataPathCmd(a))
	configCmd.AddCommand(newConfigSetLogLevelCmd(a))
	return configCmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			configPath, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return tracker.Errorf(tracker.KindInvalidArgument, "error loading configuration: %w", err)
			}
			level := cfg.LogLevel
			if level == "" {
				level = "info"
			}
			fmt.Fprintf(out, "Config file: %s\n", identifierColor.Sprint(configPath))
			fmt.Fprintf(out, "Data file:   %s\n", a.dataPath)
			fmt.Fprintf(out, "Log file:    %s\n", a.logPath)
			fmt.Fprintf(out, "Log level:   %s\n", level)
			return nil
		},
	}
}

func newConfigGetDataPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get-data-path",
		Short: "Show the configured applications file and the one in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg, err := config.LoadFile()
			if err != nil {
				return tracker.Errorf(tracker.KindInvalidArgument, "error loading configuration: %w", err)
			}

			if cfg.DataPath != "" {
				fmt.Fprintf(out, "Configured data path: %s\n", identifierColor.Sprint(cfg.DataPath))
			} else {
				defaultPath, _ := config.DefaultDataPath()
				fmt.Fprintln(out, "Data path not explicitly configured.")
				fmt.Fprintf(out, "Default data path: %s\n", identifierColor.Sprint(defaultPath))
			}

			source := "(from config)"
			switch {
			case a.dataFlag != "":
				source = "(from --data)"
			case os.Getenv(config.EnvDataPath) != "":
				source = "(from " + config.EnvDataPath + ")"
			case cfg.DataPath == "":
				source = "(default)"
			}
			successColor.Fprintf(out, "Effective path being used: %s %s\n", a.dataPath, source)

			if _, err := os.Stat(a.dataPath); err != nil {
				errorColor.Fprintf(out, "Warning: %s does not exist yet. Run 'jt init' to create it.\n", a.dataPath)
			}
			return nil
		},
	}
}

func newConfigSetDataPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-data-path <path>",
		Short: "Set the applications CSV file",
		Long: `Sets the CSV file where applications are stored.
Use an absolute path or a path starting with '~/' (e.g., '~/jobs/applications.csv').
To revert to the default location, set the path to an empty string: jt config set-data-path ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataPath := args[0]
			if dataPath != "" && !filepath.IsAbs(dataPath) && !strings.HasPrefix(dataPath, "~/") {
				return tracker.Errorf(tracker.KindInvalidArgument, "path must be absolute or start with '~/'")
			}

			cfg, err := config.LoadFile()
			if err != nil {
				return tracker.Errorf(tracker.KindInvalidArgument, "error loading configuration: %w", err)
			}
			cfg.DataPath = dataPath
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}
			a.log.Info("Data path configured", "path", dataPath)

			out := cmd.OutOrStdout()
			if dataPath == "" {
				successColor.Fprintln(out, "Data path reset to the default location.")
			} else {
				successColor.Fprintf(out, "Data path set to: %s\n", dataPath)
			}
			return nil
		},
	}
}

func newConfigSetLogLevelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "set-log-level <level>",
		Short:     "Set the minimum level written to the log file (debug, info, warn, error)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"debug", "info", "warn", "error"},
		RunE: func(cmd *cobra.Command, args []string) error {
			level := strings.ToLower(args[0])
			if _, err := logger.ParseLevel(level); err != nil {
				return tracker.Errorf(tracker.KindInvalidArgument, "%w", err)
			}

			cfg, err := config.LoadFile()
			if err != nil {
				return tracker.Errorf(tracker.KindInvalidArgument, "error loading configuration: %w", err)
			}
			cfg.LogLevel = level
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}
			a.log.Info("Log level configured", "level", level)
			successColor.Fprintf(cmd.OutOrStdout(), "Log level set to: %s\n", level)
			return nil
		},
	}
}
