// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"io"
	"strings"

	"job-tracker/internal/tracker"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty applications file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tracker.Init(a.dataPath); err != nil {
				return err
			}
			a.log.Info("Initialized data file", "path", a.dataPath)
			successColor.Fprintf(cmd.OutOrStdout(), "Created %s\n", a.dataPath)
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var entry tracker.Application
	var status string

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a new job application",
		Example: "  jt add --company Acme --role Engineer --source LinkedIn\n  jt add --company Globex --role SRE --status interview --date-applied 2025-03-01",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			entry.Status = tracker.Status(status)
			added, err := s.Add(entry)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			successColor.Fprintln(out, "Added application:")
			printApplication(out, added)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&entry.Company, "company", "", "company name (required)")
	f.StringVar(&entry.Role, "role", "", "role title (required)")
	f.StringVar(&entry.Location, "location", "", "job location")
	f.StringVar(&entry.Source, "source", "", "where the posting was found")
	f.StringVar(&entry.Notes, "notes", "", "free-form notes")
	f.StringVar(&status, "status", "", "applied, interview, rejected or offer (default applied)")
	f.StringVar(&entry.DateApplied, "date-applied", "", "date applied as YYYY-MM-DD (default today)")
	registerCompletions(a, cmd)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var filter tracker.Filter

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List job applications",
		Example: "  jt list\n  jt list --status interview\n  jt list --company Acme",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Reject a bad status filter before touching the data file.
			if strings.TrimSpace(filter.Status) != "" {
				if _, err := tracker.NormalizeStatus(filter.Status); err != nil {
					return err
				}
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			matched, err := s.List(filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case len(s.Applications()) == 0:
				a.log.Info("List on empty dataset")
				fmt.Fprintln(out, "No applications found.")
			case len(matched) == 0:
				fmt.Fprintln(out, "No applications match the given filters.")
			default:
				printTable(out, matched)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Company, "company", "", "only show this company (exact, case-sensitive)")
	cmd.Flags().StringVar(&filter.Status, "status", "", "only show this status")
	registerCompletions(a, cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var company, role string
	var changes tracker.Changes

	cmd := &cobra.Command{
		Use:     "update",
		Short:   "Update the status or notes of a job application",
		Example: "  jt update --company Acme --role Engineer --status interview\n  jt update --company Acme --role Engineer --notes \"onsite on Friday\"",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			updated, err := s.Update(company, role, changes)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			successColor.Fprintln(out, "Application updated:")
			printApplication(out, updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "company name (required)")
	cmd.Flags().StringVar(&role, "role", "", "role title (required)")
	cmd.Flags().StringVar(&changes.Status, "status", "", "new status")
	cmd.Flags().StringVar(&changes.Notes, "notes", "", "new notes (replaces existing notes)")
	registerCompletions(a, cmd)
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "summary",
		Aliases: []string{"stats"},
		Short:   "Show application statistics",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			sum := s.Summarize()
			out := cmd.OutOrStdout()
			if sum.Total == 0 {
				a.log.Info("Summary on empty dataset")
				fmt.Fprintln(out, "No applications found.")
				return nil
			}
			printSummary(out, sum)
			return nil
		},
	}
}

func statusPrinter(s tracker.Status) *color.Color {
	switch s {
	case tracker.StatusApplied:
		return appliedColor
	case tracker.StatusInterview:
		return interviewColor
	case tracker.StatusOffer:
		return offerColor
	case tracker.StatusRejected:
		return rejectedColor
	default:
		return dimColor
	}
}

func printApplication(w io.Writer, rec tracker.Application) {
	printField(w, "Company", identifierColor.Sprint(rec.Company))
	printField(w, "Role", rec.Role)
	printField(w, "Location", rec.Location)
	printField(w, "Date applied", rec.DateApplied)
	printField(w, "Status", statusPrinter(rec.Status).Sprint(rec.Status))
	printField(w, "Source", rec.Source)
	printField(w, "Notes", rec.Notes)
}

// printTable renders applications as aligned columns. Widths are measured in
// terminal cells and padding is applied before coloring so escape codes do not
// skew them.
func printTable(w io.Writer, apps []tracker.Application) {
	widths := make([]int, len(tracker.Columns))
	for i, col := range tracker.Columns {
		widths[i] = runewidth.StringWidth(col)
	}
	rows := make([][]string, len(apps))
	for r, rec := range apps {
		rows[r] = []string{rec.Company, rec.Role, rec.Location, rec.DateApplied, string(rec.Status), rec.Source, rec.Notes}
		for i, cell := range rows[r] {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	pad := func(i int, s string) string {
		if i == len(widths)-1 {
			return s
		}
		return runewidth.FillRight(s, widths[i])
	}

	header := make([]string, len(tracker.Columns))
	for i, col := range tracker.Columns {
		header[i] = headerColor.Sprint(pad(i, col))
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(header, "  "), " "))

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = pad(i, cell)
		}
		cells[0] = identifierColor.Sprint(cells[0])
		cells[4] = statusPrinter(apps[r].Status).Sprint(cells[4])
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func printSummary(w io.Writer, sum tracker.Summary) {
	headerColor.Fprintln(w, "Summary")
	fmt.Fprintln(w, strings.Repeat("-", 20))
	fmt.Fprintf(w, "Total applications: %d\n\n", sum.Total)

	statusColor.Fprintln(w, "By status:")
	for _, b := range sum.ByStatus {
		fmt.Fprintf(w, "  %s: %d\n", statusPrinter(tracker.Status(b.Label)).Sprint(b.Label), b.Count)
	}
	fmt.Fprintln(w)

	statusColor.Fprintln(w, "By source:")
	for _, b := range sum.BySource {
		fmt.Fprintf(w, "  %s: %d\n", b.Label, b.Count)
	}
}
