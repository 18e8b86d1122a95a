// SPDX-License-Identifier: MIT

// Package export serializes DSM tables and cluster reports as CSV.
//
// Matrix layout: a header row holding an empty corner cell followed by the
// column names, then one row per row entity starting with its name.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/opldsm/dsm"
)

// Report row headers.
const (
	ObjectsRow   = "Objects"
	ProcessesRow = "Processes"
)

// WriteMatrix writes t as CSV to w.
func WriteMatrix(w io.Writer, t dsm.Table) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(t.ColNames)+1)
	header = append(header, "")
	header = append(header, t.ColNames...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("WriteMatrix %s header: %w", t.Kind, err)
	}

	record := make([]string, len(t.ColNames)+1)
	for i, name := range t.RowNames {
		record[0] = name
		copy(record[1:], t.Cells[i])
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("WriteMatrix %s row %q: %w", t.Kind, name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteMatrix %s: %w", t.Kind, err)
	}
	return nil
}

// WriteClusterReport writes two rows, the object labels then the process
// labels, each led by its row header.
func WriteClusterReport(w io.Writer, objects, processes []int) error {
	cw := csv.NewWriter(w)
	for _, row := range []struct {
		name   string
		labels []int
	}{
		{ObjectsRow, objects},
		{ProcessesRow, processes},
	} {
		record := make([]string, 0, len(row.labels)+1)
		record = append(record, row.name)
		for _, l := range row.labels {
			record = append(record, strconv.Itoa(l))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("WriteClusterReport %s: %w", row.name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteClusterReport: %w", err)
	}
	return nil
}
