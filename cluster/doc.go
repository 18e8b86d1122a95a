// SPDX-License-Identifier: MIT

// Package cluster reorders a DSM so that clustered processes and objects
// sit next to each other.
//
// Partitioning is a capability behind the Partitioner interface: given a
// symmetric non-negative affinity matrix, a cluster count k and a seed, it
// returns one label in [0, k) per row and must be deterministic for a fixed
// seed. Spectral is the bundled implementation:
//
//  1. M = D^{-1/2} A D^{-1/2}, D = diag(row sums of A).
//  2. Jacobi eigen decomposition of M (matrix.Eigen); keep the k leading
//     eigenvectors as an n×k embedding with a deterministic sign.
//  3. L2-normalize embedding rows.
//  4. k-means++ seeded from the caller's seed, several restarts, lowest
//     inertia wins.
//  5. Relabel clusters in order of first appearance.
//
// Reorder runs the partitioner over OO (objects) and PP (processes), turns
// each label vector into a stable ascending-label order and rebuilds the DSM
// through dsm.(*DSM).Permute. The input DSM is kept for comparison.
package cluster
