// SPDX-License-Identifier: MIT

package dsm

import "errors"

var (
	// ErrUnknownEntity marks a relation endpoint missing from the supplied name sets.
	ErrUnknownEntity = errors.New("dsm: unknown entity")

	// ErrEmptyAxis is returned when Build receives no processes or no objects.
	ErrEmptyAxis = errors.New("dsm: no processes or no objects")

	// ErrUnknownKind is returned by ParseKind for anything but PO, PP or OO.
	ErrUnknownKind = errors.New("dsm: unknown matrix kind")

	// ErrDuplicateName is returned when a name repeats within one axis.
	ErrDuplicateName = errors.New("dsm: duplicate name")
)
