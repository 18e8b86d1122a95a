// SPDX-License-Identifier: MIT

package dsm

import (
	"fmt"

	"github.com/katalvlaran/opldsm/matrix"
)

// Labels is a row-major grid of relation codes, "" meaning no relation.
type Labels struct {
	r, c int
	data []string
}

func newLabels(rows, cols int) *Labels {
	return &Labels{r: rows, c: cols, data: make([]string, rows*cols)}
}

// Rows returns the row count.
func (l *Labels) Rows() int { return l.r }

// Cols returns the column count.
func (l *Labels) Cols() int { return l.c }

// At returns the code at (row, col).
func (l *Labels) At(row, col int) (string, error) {
	if row < 0 || row >= l.r || col < 0 || col >= l.c {
		return "", fmt.Errorf("Labels.At(%d,%d): %w", row, col, matrix.ErrOutOfRange)
	}
	return l.data[row*l.c+col], nil
}

func (l *Labels) set(row, col int, code string) {
	l.data[row*l.c+col] = code
}

// permute returns a copy reindexed like matrix.Permute. Orders are
// validated by the caller.
func (l *Labels) permute(rowOrder, colOrder []int) *Labels {
	out := newLabels(l.r, l.c)
	for i, ri := range rowOrder {
		for j, cj := range colOrder {
			out.data[i*l.c+j] = l.data[ri*l.c+cj]
		}
	}
	return out
}
