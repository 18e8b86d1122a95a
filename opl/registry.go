// SPDX-License-Identifier: MIT

package opl

import (
	"maps"
	"slices"
)

// Kind distinguishes the two entity namespaces held by a Registry.
type Kind int

const (
	KindProcess Kind = iota
	KindObject
)

func (k Kind) String() string {
	if k == KindProcess {
		return "process"
	}
	return "object"
}

// Registry is the single name registry shared by declaration parsing and
// relation parsing. The first use of a name registers it; later uses are
// no-ops except that a declaration upgrades a mention-only entry.
//
// The zero value is not usable; call NewRegistry.
type Registry struct {
	// name → declared (true once a declaration line named it)
	processes map[string]bool
	objects   map[string]bool
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		processes: make(map[string]bool),
		objects:   make(map[string]bool),
	}
}

func (r *Registry) set(kind Kind) map[string]bool {
	if kind == KindProcess {
		return r.processes
	}
	return r.objects
}

// Declare records name as an explicitly declared entity of the given kind.
func (r *Registry) Declare(kind Kind, name string) {
	r.set(kind)[name] = true
}

// Mention records name as referenced by a relation. An already declared
// name stays declared.
func (r *Registry) Mention(kind Kind, name string) {
	s := r.set(kind)
	if _, ok := s[name]; !ok {
		s[name] = false
	}
}

// Has reports whether name is registered under kind.
func (r *Registry) Has(kind Kind, name string) bool {
	_, ok := r.set(kind)[name]
	return ok
}

// Processes returns the registered process names, sorted.
func (r *Registry) Processes() []string { return sortedKeys(r.processes) }

// Objects returns the registered object names, sorted.
func (r *Registry) Objects() []string { return sortedKeys(r.objects) }

// Undeclared returns the sorted names of the given kind that only ever
// appeared inside relations.
func (r *Registry) Undeclared(kind Kind) []string {
	var out []string
	for name, declared := range r.set(kind) {
		if !declared {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

func sortedKeys(m map[string]bool) []string {
	return slices.Sorted(maps.Keys(m))
}
