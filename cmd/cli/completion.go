// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"strings"

	"job-tracker/internal/tracker"

	"github.com/spf13/cobra"
)

// storeForCompletion loads the data file without logging. Completion runs
// outside PersistentPreRunE, so paths are resolved here.
func storeForCompletion(a *app) (*tracker.Store, bool) {
	if _, err := a.resolvePaths(); err != nil {
		return nil, false
	}
	s, err := tracker.Open(a.dataPath, nil)
	if err != nil {
		return nil, false
	}
	return s, true
}

func filterPrefix(values []string, prefix string) []string {
	var out []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}

func companyCompletionFunc(a *app) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		s, ok := storeForCompletion(a)
		if !ok {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return filterPrefix(s.Companies(), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// roleCompletionFunc narrows roles to the company given by --company, if any.
func roleCompletionFunc(a *app) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		s, ok := storeForCompletion(a)
		if !ok {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		company, _ := cmd.Flags().GetString("company")
		return filterPrefix(s.Roles(strings.TrimSpace(company)), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

func statusCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(tracker.Statuses))
	for i, s := range tracker.Statuses {
		names[i] = string(s)
	}
	return filterPrefix(names, strings.ToLower(toComplete)), cobra.ShellCompDirectiveNoFileComp
}

// registerCompletions attaches value completion to whichever of the
// company, role and status flags cmd defines.
func registerCompletions(a *app, cmd *cobra.Command) {
	funcs := map[string]cobra.CompletionFunc{
		"company": companyCompletionFunc(a),
		"role":    roleCompletionFunc(a),
		"status":  statusCompletionFunc,
	}
	for name, fn := range funcs {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, fn)
		}
	}
}
