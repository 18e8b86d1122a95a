// SPDX-License-Identifier: MIT

package cluster

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/opldsm/matrix"
)

// Partitioner splits n items into k labeled clusters from an n×n affinity matrix.
// Implementations must be deterministic for a fixed seed.
type Partitioner interface {
	Partition(affinity matrix.Matrix, k int, seed int64) ([]int, error)
}

// PartitionerFunc adapts a plain function to Partitioner.
type PartitionerFunc func(affinity matrix.Matrix, k int, seed int64) ([]int, error)

// Partition calls f.
func (f PartitionerFunc) Partition(affinity matrix.Matrix, k int, seed int64) ([]int, error) {
	return f(affinity, k, seed)
}

// Defaults for Spectral.
const (
	DefaultTolerance     = 1e-9
	DefaultRestarts      = 10
	DefaultMaxKMeansIter = 300
	// sweepFactor * n² Jacobi rotations bound the eigen stage unless
	// WithMaxSweeps overrides it.
	sweepFactor  = 30
	minMaxSweeps = 1000
)

// Spectral is a normalized spectral clustering Partitioner.
type Spectral struct {
	tol           float64
	maxSweeps     int // 0 ⇒ derived from n
	restarts      int
	maxKMeansIter int
}

var _ Partitioner = (*Spectral)(nil)

// Option configures a Spectral partitioner.
type Option func(*Spectral)

// WithTolerance sets the symmetry and eigen convergence tolerance (must be > 0).
func WithTolerance(tol float64) Option {
	return func(s *Spectral) {
		if tol > 0 && !math.IsInf(tol, 0) {
			s.tol = tol
		}
	}
}

// WithMaxSweeps caps the number of Jacobi rotations.
func WithMaxSweeps(n int) Option {
	return func(s *Spectral) {
		if n > 0 {
			s.maxSweeps = n
		}
	}
}

// WithRestarts sets how many seeded k-means runs compete on inertia.
func WithRestarts(n int) Option {
	return func(s *Spectral) {
		if n > 0 {
			s.restarts = n
		}
	}
}

// WithMaxKMeansIter caps Lloyd iterations per restart.
func WithMaxKMeansIter(n int) Option {
	return func(s *Spectral) {
		if n > 0 {
			s.maxKMeansIter = n
		}
	}
}

// NewSpectral returns a Spectral partitioner; options apply in order.
func NewSpectral(opts ...Option) *Spectral {
	s := &Spectral{
		tol:           DefaultTolerance,
		restarts:      DefaultRestarts,
		maxKMeansIter: DefaultMaxKMeansIter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Partition implements Partitioner.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, matrix.ErrAsymmetry.
//   - ErrNegativeAffinity, ErrClusterCount (k < 1 or k > n).
//   - matrix.ErrMatrixEigenFailed when the Jacobi stage does not converge.
func (s *Spectral) Partition(affinity matrix.Matrix, k int, seed int64) ([]int, error) {
	if err := matrix.ValidateSymmetric(affinity, s.tol); err != nil {
		return nil, fmt.Errorf("Spectral: %w", err)
	}
	n := affinity.Rows()
	if k < 1 || k > n {
		return nil, fmt.Errorf("Spectral: k=%d for %d items: %w", k, n, ErrClusterCount)
	}
	norm, err := normalizedAffinity(affinity)
	if err != nil {
		return nil, fmt.Errorf("Spectral: %w", err)
	}

	// Trivial partitions need no embedding.
	labels := make([]int, n)
	switch k {
	case 1:
		return labels, nil
	case n:
		for i := range labels {
			labels[i] = i
		}
		return labels, nil
	}

	emb, err := s.embed(norm, k)
	if err != nil {
		return nil, fmt.Errorf("Spectral: %w", err)
	}
	labels = kMeans(emb, k, rngFromSeed(seed), s.restarts, s.maxKMeansIter)

	return canonical(labels), nil
}

// normalizedAffinity returns D^{-1/2} A D^{-1/2}. Isolated items (zero
// degree) get an all-zero row and column.
func normalizedAffinity(a matrix.Matrix) (*matrix.Dense, error) {
	n := a.Rows()
	deg, err := matrix.RowSums(a)
	if err != nil {
		return nil, err
	}
	inv := make([]float64, n)
	for i, d := range deg {
		if d > 0 {
			inv[i] = 1 / math.Sqrt(d)
		}
	}
	out, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if v, err = a.At(i, j); err != nil {
				return nil, err
			}
			if v < 0 {
				return nil, fmt.Errorf("affinity[%d,%d]=%g: %w", i, j, v, ErrNegativeAffinity)
			}
			v *= inv[i] * inv[j]
			// mirror the upper triangle so the result is exactly symmetric
			_ = out.Set(i, j, v)
			_ = out.Set(j, i, v)
		}
	}
	return out, nil
}

// embed returns the n×k matrix of leading eigenvectors of m, one row per
// item, rows L2-normalized.
func (s *Spectral) embed(m *matrix.Dense, k int) ([][]float64, error) {
	n := m.Rows()
	sweeps := s.maxSweeps
	if sweeps == 0 {
		sweeps = max(minMaxSweeps, sweepFactor*n*n)
	}
	eigs, q, err := matrix.Eigen(m, s.tol, sweeps)
	if err != nil {
		return nil, err
	}

	// Largest eigenvalues first; ties keep index order.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(eigs[b], eigs[a]) })

	u, err := matrix.NewDense(n, k)
	if err != nil {
		return nil, err
	}
	for c := 0; c < k; c++ {
		col := idx[c]
		// Eigenvectors are defined up to sign: make the largest-magnitude
		// entry positive so runs agree.
		sign, best := 1.0, 0.0
		for i := 0; i < n; i++ {
			v, _ := q.At(i, col)
			if math.Abs(v) > best {
				best = math.Abs(v)
				sign = math.Copysign(1, v)
			}
		}
		for i := 0; i < n; i++ {
			v, _ := q.At(i, col)
			_ = u.Set(i, c, sign*v)
		}
	}

	normed, _, err := matrix.NormalizeRowsL2(u)
	if err != nil {
		return nil, err
	}
	points := make([][]float64, n)
	for i := range points {
		points[i] = make([]float64, k)
		for c := range points[i] {
			points[i][c], _ = normed.At(i, c)
		}
	}
	return points, nil
}

// canonical renumbers labels in order of first appearance, so the first
// item is always in cluster 0.
func canonical(labels []int) []int {
	remap := make(map[int]int)
	out := make([]int, len(labels))
	for i, l := range labels {
		id, ok := remap[l]
		if !ok {
			id = len(remap)
			remap[l] = id
		}
		out[i] = id
	}
	return out
}
