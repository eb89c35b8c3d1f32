// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tracker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// errEmptyTable is returned by decodeTable when the input has no header row.
var errEmptyTable = errors.New("file is empty")

// missingColumnsError lists expected columns absent from a header.
type missingColumnsError struct {
	missing []string
}

func (e *missingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: [%s]", strings.Join(e.missing, ", "))
}

// decodeTable parses a CSV table whose header must contain every entry of Columns.
// Columns are matched by name; unknown columns are ignored and short rows
// leave the remaining fields empty.
func decodeTable(r io.Reader) ([]Application, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	positions := make([]int, len(Columns))
	for i, col := range Columns {
		pos, ok := index[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		positions[i] = pos
	}
	if len(missing) > 0 {
		return nil, &missingColumnsError{missing: missing}
	}

	var apps []Application
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		cell := func(i int) string {
			if positions[i] < len(row) {
				return row[positions[i]]
			}
			return ""
		}
		apps = append(apps, Application{
			Company:     cell(0),
			Role:        cell(1),
			Location:    cell(2),
			DateApplied: cell(3),
			Status:      Status(cell(4)),
			Source:      cell(5),
			Notes:       cell(6),
		})
	}
	return apps, nil
}

// encodeTable writes the header followed by one row per application.
func encodeTable(w io.Writer, apps []Application) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, app := range apps {
		if err := cw.Write(app.fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
