// SPDX-License-Identifier: MIT

// Package matrix offers the dense linear-algebra primitives behind the DSM
// pipeline.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set that
//     return sentinel errors instead of panicking.
//   - Mul and Transpose, used to derive co-occurrence matrices
//     (PP = PO·POᵀ, OO = POᵀ·PO) from a binary incidence matrix.
//   - Permute, a copy-based row/column reindexing that never mutates its
//     input, so pre- and post-reorder matrices stay comparable.
//   - Eigen, a deterministic Jacobi eigen decomposition for symmetric
//     matrices, plus NormalizeRowsL2 and RowSums for spectral embeddings.
//
// All kernels use fixed loop orders, so identical inputs always produce
// bit-identical outputs.
package matrix
