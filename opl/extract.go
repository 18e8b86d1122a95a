// SPDX-License-Identifier: MIT

package opl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidInput is returned when extraction yields no processes or no
// objects. Callers must stop without producing any matrix.
var ErrInvalidInput = errors.New("opl: invalid input")

const (
	objectSuffix  = "object"
	processSuffix = "process"
	nameSep       = " is "
	handlesSep    = " " + string(Handles) + " "
	andSep        = " and "
)

// Stats counts how input lines were classified.
type Stats struct {
	Lines        int // lines read
	Skipped      int // lines without '.', treated as formatting noise
	Ignored      int // lines matching no shape
	Declarations int // process and object declarations
}

// Result is the outcome of a successful extraction.
type Result struct {
	Processes []string   // sorted, deduplicated
	Objects   []string   // sorted, deduplicated
	Relations []Relation // input order, not deduplicated
	Registry  *Registry
	Stats     Stats
}

// Extractor folds OPL lines into a Registry and a relation list.
// Use Add per line and Result once all lines are consumed.
type Extractor struct {
	reg       *Registry
	relations []Relation
	stats     Stats
}

// NewExtractor returns an Extractor with an empty Registry.
func NewExtractor() *Extractor {
	return &Extractor{reg: NewRegistry()}
}

// Extract classifies every line and returns the extracted entities and relations.
func Extract(lines []string) (*Result, error) {
	e := NewExtractor()
	for _, line := range lines {
		e.Add(line)
	}
	return e.Result()
}

// ExtractReader reads r line by line and extracts entities and relations.
func ExtractReader(r io.Reader) (*Result, error) {
	e := NewExtractor()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		e.Add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("opl: read input: %w", err)
	}
	return e.Result()
}

// Add classifies a single line.
func (e *Extractor) Add(line string) {
	e.stats.Lines++

	body, ok := stripEnumeration(line)
	if !ok {
		e.stats.Skipped++
		return
	}

	switch {
	case strings.HasSuffix(body, objectSuffix):
		e.declare(KindObject, body)
	case strings.HasSuffix(body, processSuffix):
		e.declare(KindProcess, body)
	case strings.Contains(body, handlesSep):
		left, right, _ := strings.Cut(body, handlesSep)
		e.relate(Handles, strings.TrimSpace(right), left)
	default:
		for _, kw := range typedPriority {
			// Split at the first occurrence only; a repeated keyword stays
			// part of the object list.
			left, right, found := strings.Cut(body, string(kw))
			if !found {
				continue
			}
			e.relate(kw, strings.TrimSpace(left), right)
			return
		}
		e.stats.Ignored++
	}
}

// Result finalizes the extraction. It fails with ErrInvalidInput when either
// entity set is empty.
func (e *Extractor) Result() (*Result, error) {
	res := &Result{
		Processes: e.reg.Processes(),
		Objects:   e.reg.Objects(),
		Relations: e.relations,
		Registry:  e.reg,
		Stats:     e.stats,
	}
	if len(res.Processes) == 0 || len(res.Objects) == 0 {
		return nil, fmt.Errorf("%d processes, %d objects: %w",
			len(res.Processes), len(res.Objects), ErrInvalidInput)
	}
	return res, nil
}

func (e *Extractor) declare(kind Kind, body string) {
	name, _, _ := strings.Cut(body, nameSep)
	name = strings.TrimSpace(name)
	if name == "" {
		e.stats.Ignored++
		return
	}
	e.reg.Declare(kind, name)
	e.stats.Declarations++
}

// relate emits one relation per object token. A line without a process name
// is ignored; a line whose object list is empty registers the process only.
func (e *Extractor) relate(kw Keyword, process, objectList string) {
	if process == "" {
		e.stats.Ignored++
		return
	}
	e.reg.Mention(KindProcess, process)
	for _, obj := range splitObjects(objectList) {
		e.reg.Mention(KindObject, obj)
		e.relations = append(e.relations, Relation{Object: obj, Keyword: kw, Process: process})
	}
}

// stripEnumeration drops everything up to and including the first '.', trims
// the rest and removes one trailing sentence terminator.
func stripEnumeration(line string) (string, bool) {
	_, rest, found := strings.Cut(line, ".")
	if !found {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSpace(strings.TrimSuffix(rest, "."))
	return rest, true
}

// splitObjects turns "A, B and C" into [A B C], dropping empty tokens.
func splitObjects(s string) []string {
	s = strings.ReplaceAll(s, andSep, ",")
	var out []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
