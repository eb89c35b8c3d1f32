// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tracker

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// Bucket is one group of a summary breakdown.
type Bucket struct {
	Label string
	Count int
}

// Summary holds aggregate counts over the whole table.
type Summary struct {
	Total    int
	ByStatus []Bucket
	BySource []Bucket
}

// Summarize counts applications in total, by status and by source.
// Applications without a source are counted under UnknownSource.
func (s *Store) Summarize() Summary {
	byStatus := lo.CountValuesBy(s.apps, func(a Application) string { return string(a.Status) })
	bySource := lo.CountValuesBy(s.apps, func(a Application) string {
		if a.Source == "" {
			return UnknownSource
		}
		return a.Source
	})
	return Summary{
		Total:    len(s.apps),
		ByStatus: buckets(byStatus),
		BySource: buckets(bySource),
	}
}

// buckets orders counts by descending count, ties broken by label.
func buckets(counts map[string]int) []Bucket {
	out := lo.MapToSlice(counts, func(label string, n int) Bucket {
		return Bucket{Label: label, Count: n}
	})
	slices.SortFunc(out, func(a, b Bucket) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}
