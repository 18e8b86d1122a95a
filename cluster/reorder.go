// SPDX-License-Identifier: MIT

package cluster

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/katalvlaran/opldsm/dsm"
	"github.com/katalvlaran/opldsm/matrix"
)

// Assignment holds the cluster label of every item (in the original item
// order) and the derived stable order that groups equal labels.
type Assignment struct {
	Labels []int
	Order  []int
}

// SortedLabels returns the labels in ascending order. This is what the
// cluster report shows: cluster sizes, not which item went where.
func (a Assignment) SortedLabels() []int {
	out := slices.Clone(a.Labels)
	slices.Sort(out)
	return out
}

// Result is the outcome of Reorder. Original is the input DSM, DSM the
// reordered one.
type Result struct {
	Clusters  int
	Seed      int64
	Objects   Assignment
	Processes Assignment
	Original  *dsm.DSM
	DSM       *dsm.DSM
}

// Order returns the indices of labels sorted by ascending label. Items with
// equal labels keep their relative order.
func Order(labels []int) []int {
	idx := make([]int, len(labels))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(labels[a], labels[b]) })
	return idx
}

// Reorder partitions objects over d.OO and processes over d.PP into k
// clusters each, then rebuilds the DSM under the resulting orders.
// Partitioner errors are returned unchanged in the wrap chain.
func Reorder(d *dsm.DSM, p Partitioner, k int, seed int64) (*Result, error) {
	objects, err := assign(p, d.OO, k, seed)
	if err != nil {
		return nil, fmt.Errorf("cluster objects: %w", err)
	}
	processes, err := assign(p, d.PP, k, seed)
	if err != nil {
		return nil, fmt.Errorf("cluster processes: %w", err)
	}

	reordered, err := d.Permute(processes.Order, objects.Order)
	if err != nil {
		return nil, fmt.Errorf("cluster reorder: %w", err)
	}

	return &Result{
		Clusters:  k,
		Seed:      seed,
		Objects:   objects,
		Processes: processes,
		Original:  d,
		DSM:       reordered,
	}, nil
}

func assign(p Partitioner, affinity *matrix.Dense, k int, seed int64) (Assignment, error) {
	labels, err := p.Partition(affinity, k, seed)
	if err != nil {
		return Assignment{}, err
	}
	if len(labels) != affinity.Rows() {
		return Assignment{}, fmt.Errorf("%d labels for %d items: %w", len(labels), affinity.Rows(), ErrLabelCount)
	}
	for i, l := range labels {
		if l < 0 || l >= k {
			return Assignment{}, fmt.Errorf("label %d at %d outside [0,%d): %w", l, i, k, ErrLabelCount)
		}
	}
	return Assignment{Labels: labels, Order: Order(labels)}, nil
}
