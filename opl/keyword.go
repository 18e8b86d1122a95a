// SPDX-License-Identifier: MIT

package opl

// Keyword is the relation type between a process and an object.
type Keyword string

const (
	Requires Keyword = "requires"
	Affects  Keyword = "affects"
	Consumes Keyword = "consumes"
	Yields   Keyword = "yields"
	// Handles marks an agent relation ("<Objects> handles <Process>").
	Handles Keyword = "handles"
)

// typedPriority is the scan order for Process-Keyword-Objects lines.
// The first keyword found as a substring wins.
var typedPriority = [...]Keyword{Affects, Requires, Yields, Consumes}

// Code returns the single-letter label stored in the PO matrix.
func (k Keyword) Code() string {
	if k == "" {
		return ""
	}
	return string(k[0])
}

// Valid reports whether k belongs to the fixed vocabulary.
func (k Keyword) Valid() bool {
	switch k {
	case Requires, Affects, Consumes, Yields, Handles:
		return true
	}
	return false
}

// Relation links an object to a process through a keyword. Endpoints are
// referenced by name only.
type Relation struct {
	Object  string
	Keyword Keyword
	Process string
}
