// SPDX-License-Identifier: MIT

package dsm

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/opldsm/matrix"
	"github.com/katalvlaran/opldsm/opl"
)

// incidenceMark is written into PONum for every related (process, object) pair.
const incidenceMark = 1.0

// DSM holds the PO, PO_num, PP and OO matrices over one process and one
// object ordering. Processes index rows of PO/PONum and both axes of PP;
// Objects index columns of PO/PONum and both axes of OO.
type DSM struct {
	Processes []string
	Objects   []string
	PO        *Labels
	PONum     *matrix.Dense
	PP        *matrix.Dense
	OO        *matrix.Dense
}

// Build folds relations into PO and PONum and derives PP and OO.
//
// Implementation:
//   - Stage 1: index processes and objects by position.
//   - Stage 2: for each relation in order, write the keyword code into PO
//     (last write wins) and mark PONum (idempotent).
//   - Stage 3: PP = PONum·PONumᵀ, OO = PONumᵀ·PONum.
//
// Errors:
//   - ErrEmptyAxis, ErrDuplicateName, ErrUnknownEntity.
//
// Complexity: O(|R| + |P|·|O|·(|P|+|O|)).
func Build(processes, objects []string, relations []opl.Relation) (*DSM, error) {
	if len(processes) == 0 || len(objects) == 0 {
		return nil, ErrEmptyAxis
	}
	pIdx, err := indexNames(processes)
	if err != nil {
		return nil, fmt.Errorf("Build: processes: %w", err)
	}
	oIdx, err := indexNames(objects)
	if err != nil {
		return nil, fmt.Errorf("Build: objects: %w", err)
	}

	po := newLabels(len(processes), len(objects))
	poNum, err := matrix.NewDense(len(processes), len(objects))
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	for n, rel := range relations {
		i, ok := pIdx[rel.Process]
		if !ok {
			return nil, fmt.Errorf("Build: relation %d: process %q: %w", n, rel.Process, ErrUnknownEntity)
		}
		j, ok := oIdx[rel.Object]
		if !ok {
			return nil, fmt.Errorf("Build: relation %d: object %q: %w", n, rel.Object, ErrUnknownEntity)
		}
		po.set(i, j, rel.Keyword.Code())
		if err = poNum.Set(i, j, incidenceMark); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return assemble(slices.Clone(processes), slices.Clone(objects), po, poNum)
}

// Permute returns a new DSM whose process axis follows processOrder and whose
// object axis follows objectOrder: new row i is old row processOrder[i].
// PO and PONum are permuted; PP and OO are recomputed from the permuted PONum.
// The receiver is not modified.
func (d *DSM) Permute(processOrder, objectOrder []int) (*DSM, error) {
	poNum, err := matrix.Permute(d.PONum, processOrder, objectOrder)
	if err != nil {
		return nil, fmt.Errorf("Permute: %w", err)
	}
	return assemble(
		pick(d.Processes, processOrder),
		pick(d.Objects, objectOrder),
		d.PO.permute(processOrder, objectOrder),
		poNum,
	)
}

// RelatedPairs returns the number of (process, object) pairs with at least one relation.
func (d *DSM) RelatedPairs() int {
	return int(d.PONum.Sum())
}

// assemble derives PP and OO from poNum and packs everything into a DSM.
func assemble(processes, objects []string, po *Labels, poNum *matrix.Dense) (*DSM, error) {
	poT, err := matrix.Transpose(poNum)
	if err != nil {
		return nil, fmt.Errorf("co-occurrence: %w", err)
	}
	pp, err := matrix.Mul(poNum, poT)
	if err != nil {
		return nil, fmt.Errorf("co-occurrence PP: %w", err)
	}
	oo, err := matrix.Mul(poT, poNum)
	if err != nil {
		return nil, fmt.Errorf("co-occurrence OO: %w", err)
	}

	return &DSM{
		Processes: processes,
		Objects:   objects,
		PO:        po,
		PONum:     poNum,
		PP:        pp,
		OO:        oo,
	}, nil
}

func indexNames(names []string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for i, name := range names {
		if _, dup := idx[name]; dup {
			return nil, fmt.Errorf("%q: %w", name, ErrDuplicateName)
		}
		idx[name] = i
	}
	return idx, nil
}

func pick(names []string, order []int) []string {
	out := make([]string, len(order))
	for i, idx := range order {
		out[i] = names[idx]
	}
	return out
}
