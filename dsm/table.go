// SPDX-License-Identifier: MIT

package dsm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/opldsm/matrix"
)

// Kind selects one of the three DSM views.
type Kind string

const (
	KindPO Kind = "PO"
	KindPP Kind = "PP"
	KindOO Kind = "OO"
)

// Kinds lists the valid kinds in display order.
var Kinds = []Kind{KindPO, KindPP, KindOO}

// ParseKind accepts "PO", "PP" or "OO" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case KindPO, KindPP, KindOO:
		return k, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// Table is a serialization-ready view: Cells[i][j] belongs to row RowNames[i]
// and column ColNames[j].
type Table struct {
	Kind     Kind
	RowNames []string
	ColNames []string
	Cells    [][]string
}

// Table renders the requested matrix. PO cells are relation codes (blank
// when unrelated); PP and OO cells are integer counts.
func (d *DSM) Table(kind Kind) (Table, error) {
	switch kind {
	case KindPO:
		t := Table{Kind: kind, RowNames: d.Processes, ColNames: d.Objects, Cells: make([][]string, d.PO.r)}
		for i := range t.Cells {
			t.Cells[i] = append([]string(nil), d.PO.data[i*d.PO.c:(i+1)*d.PO.c]...)
		}
		return t, nil
	case KindPP:
		return numericTable(kind, d.Processes, d.PP)
	case KindOO:
		return numericTable(kind, d.Objects, d.OO)
	}
	return Table{}, fmt.Errorf("Table: %q: %w", kind, ErrUnknownKind)
}

func numericTable(kind Kind, names []string, m *matrix.Dense) (Table, error) {
	t := Table{Kind: kind, RowNames: names, ColNames: names, Cells: make([][]string, m.Rows())}
	for i := range t.Cells {
		row := make([]string, m.Cols())
		for j := range row {
			v, err := m.At(i, j)
			if err != nil {
				return Table{}, fmt.Errorf("Table: %w", err)
			}
			row[j] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		t.Cells[i] = row
	}
	return t, nil
}
