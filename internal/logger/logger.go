// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package logger builds the diagnostic logger. Users read command output on
// stdout; the log file is where unexpected failures are recorded in detail.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// TODO: Consider log rotation once the log file grows beyond a few MB.

// Options controls where the logger writes.
type Options struct {
	// FilePath is the log file. Empty disables file logging.
	FilePath string
	// Console, if non-nil, also receives every record (e.g. os.Stderr for --verbose).
	Console io.Writer
	// Level is the minimum level recorded.
	Level slog.Level
	// Warnings receives setup problems that do not stop the logger from working.
	// Defaults to os.Stderr.
	Warnings io.Writer
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to slog levels.
// An empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a JSON logger writing to the configured file and console.
// Failing to open the file is reported to opts.Warnings and file logging is
// skipped, so New always returns a usable logger. The returned Closer releases
// the log file.
func New(opts Options) (*slog.Logger, io.Closer) {
	warn := opts.Warnings
	if warn == nil {
		warn = os.Stderr
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.FilePath != "" {
		logDir := filepath.Dir(opts.FilePath)
		// Create directory with appropriate permissions (0750: user rwx, group rx, others ---)
		if err := os.MkdirAll(logDir, 0750); err != nil {
			fmt.Fprintf(warn, "Error creating log directory %s: %v. File logging disabled.\n", logDir, err)
		} else {
			// Open file for appending (0640: user rw, group r, others ---)
			file, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
			if err != nil {
				fmt.Fprintf(warn, "Error opening log file %s: %v. File logging disabled.\n", opts.FilePath, err)
			} else {
				writers = append(writers, file)
				closer = file
			}
		}
	}

	if opts.Console != nil {
		writers = append(writers, opts.Console)
	}

	var finalWriter io.Writer
	switch len(writers) {
	case 0:
		finalWriter = io.Discard
	case 1:
		finalWriter = writers[0]
	default:
		finalWriter = io.MultiWriter(writers...)
	}

	handler := slog.NewJSONHandler(finalWriter, &slog.HandlerOptions{Level: opts.Level})
	return slog.New(handler), closer
}
