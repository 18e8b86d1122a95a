// SPDX-License-Identifier: MIT
// Package matrix — row statistics used by spectral embeddings.
//
// Purpose:
//   - RowSums yields degrees of an affinity matrix.
//   - NormalizeRowsL2 projects embedding rows onto the unit sphere.
//
// Determinism:
//   - Fixed i→j loops; degenerate (all-zero) rows are left untouched.

package matrix

import "math"

const (
	opRowSums         = "RowSums"
	opNormalizeRowsL2 = "NormalizeRowsL2"
)

// RowSums returns Σ_j m[i,j] for each row i.
// Complexity: O(r*c).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	sums := make([]float64, d.r)
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			sums[i] += d.data[i*d.c+j]
		}
	}

	return sums, nil
}

// NormalizeRowsL2 returns a copy of X whose rows have unit L2 norm, together
// with the original row norms. Rows with zero norm are copied unchanged.
//
// Implementation:
//   - Stage 1: compute L2 norms per row.
//   - Stage 2: scale each row by 1/norm (1 for degenerate rows).
//
// Complexity: O(r*c) time, O(r*c) space for the copy.
func NormalizeRowsL2(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL2, err)
	}
	src, err := toDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL2, err)
	}
	out := src.Clone().(*Dense)
	r, c := out.r, out.c
	norms := make([]float64, r)

	var (
		i, j, base int
		sq, v      float64
		scale      float64
	)
	for i = 0; i < r; i++ {
		base = i * c
		sq = 0
		for j = 0; j < c; j++ {
			v = out.data[base+j]
			sq += v * v
		}
		norms[i] = math.Sqrt(sq)
		if norms[i] == 0 {
			continue // degenerate row: leave unchanged
		}
		scale = 1.0 / norms[i]
		for j = 0; j < c; j++ {
			out.data[base+j] *= scale
		}
	}

	return out, norms, nil
}
