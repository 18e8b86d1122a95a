// SPDX-License-Identifier: MIT

package cluster

import "errors"

var (
	// ErrClusterCount is returned when k < 1 or k exceeds the number of items.
	ErrClusterCount = errors.New("cluster: invalid cluster count")

	// ErrNegativeAffinity is returned when an affinity entry is below zero.
	ErrNegativeAffinity = errors.New("cluster: negative affinity")

	// ErrLabelCount is returned when a partitioner yields the wrong number of
	// labels or a label outside [0, k).
	ErrLabelCount = errors.New("cluster: partitioner returned invalid labels")
)
