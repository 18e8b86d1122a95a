// SPDX-License-Identifier: MIT

package matrix

import "fmt"

const opPermute = "Permute"

// Permute materializes m reindexed by rowOrder and colOrder:
// result[i,j] = m[rowOrder[i], colOrder[j]].
//
// Both orders must be permutations of the respective axis (ErrBadPermutation
// otherwise). The input is never mutated, so callers can keep the original
// and the permuted matrices side by side.
//
// Complexity: O(r*c) time and memory.
func Permute(m Matrix, rowOrder, colOrder []int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opPermute, err)
	}
	if err := ValidatePermutation(rowOrder, m.Rows()); err != nil {
		return nil, matrixErrorf(opPermute, fmt.Errorf("rows: %w", err))
	}
	if err := ValidatePermutation(colOrder, m.Cols()); err != nil {
		return nil, matrixErrorf(opPermute, fmt.Errorf("cols: %w", err))
	}
	src, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opPermute, err)
	}
	res, err := NewDense(src.r, src.c)
	if err != nil {
		return nil, matrixErrorf(opPermute, err)
	}

	var i, j, base int
	for i = 0; i < src.r; i++ {
		base = rowOrder[i] * src.c
		for j = 0; j < src.c; j++ {
			res.data[i*src.c+j] = src.data[base+colOrder[j]]
		}
	}

	return res, nil
}
