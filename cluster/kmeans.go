// SPDX-License-Identifier: MIT

package cluster

import (
	"math"
	"math/rand"
)

// kMeans clusters points into k groups. Each restart draws k-means++ seeds
// from its own derived stream; the run with the lowest inertia wins and
// earlier restarts win ties.
//
// Complexity: O(restarts * maxIter * n * k * dim).
func kMeans(points [][]float64, k int, base *rand.Rand, restarts, maxIter int) []int {
	var (
		best        []int
		bestInertia = math.Inf(1)
	)
	for r := 0; r < restarts; r++ {
		rng := deriveRNG(base, uint64(r))
		labels, inertia := lloyd(points, seedCenters(points, k, rng), maxIter)
		if inertia < bestInertia {
			best, bestInertia = labels, inertia
		}
	}
	return best
}

// seedCenters picks k initial centers with k-means++: the first uniformly,
// each next one with probability proportional to its squared distance to
// the nearest chosen center.
func seedCenters(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	centers := make([][]float64, 0, k)
	centers = append(centers, clonePoint(points[rng.Intn(n)]))

	d2 := make([]float64, n)
	for i := range d2 {
		d2[i] = sqDist(points[i], centers[0])
	}
	for len(centers) < k {
		var total float64
		for _, v := range d2 {
			total += v
		}
		next := rng.Intn(n) // all points coincide with centers: fall back to uniform
		if total > 0 {
			target := rng.Float64() * total
			for i, v := range d2 {
				target -= v
				if target <= 0 && v > 0 {
					next = i
					break
				}
			}
		}
		c := clonePoint(points[next])
		centers = append(centers, c)
		for i := range d2 {
			d2[i] = math.Min(d2[i], sqDist(points[i], c))
		}
	}
	return centers
}

// lloyd refines centers until assignments stop changing or maxIter is hit.
// Returns the labels and the final inertia (sum of squared distances).
func lloyd(points [][]float64, centers [][]float64, maxIter int) ([]int, float64) {
	n, k, dim := len(points), len(centers), len(points[0])
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	counts := make([]int, k)

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			if c := nearest(p, centers); c != labels[i] {
				labels[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		// recompute means
		for c := range centers {
			counts[c] = 0
			for d := 0; d < dim; d++ {
				centers[c][d] = 0
			}
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for d, v := range p {
				centers[c][d] += v
			}
		}
		for c := range centers {
			if counts[c] == 0 {
				continue
			}
			for d := 0; d < dim; d++ {
				centers[c][d] /= float64(counts[c])
			}
		}
		for c := range centers {
			if counts[c] > 0 {
				continue
			}
			// empty cluster: steal the point farthest from its center
			far := farthest(points, labels, centers)
			counts[labels[far]]--
			copy(centers[c], points[far])
			labels[far] = c
			counts[c] = 1
		}
	}

	var inertia float64
	for i, p := range points {
		inertia += sqDist(p, centers[labels[i]])
	}
	return labels, inertia
}

// nearest returns the index of the closest center; ties go to the lower index.
func nearest(p []float64, centers [][]float64) int {
	best, bestD := 0, math.Inf(1)
	for c, center := range centers {
		if d := sqDist(p, center); d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

func farthest(points [][]float64, labels []int, centers [][]float64) int {
	far, farD := 0, -1.0
	for i, p := range points {
		if d := sqDist(p, centers[labels[i]]); d > farD {
			far, farD = i, d
		}
	}
	return far
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func clonePoint(p []float64) []float64 {
	return append([]float64(nil), p...)
}
