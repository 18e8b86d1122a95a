// SPDX-License-Identifier: MIT

// Package opl extracts entities and typed relations from Object-Process
// Language (OPL) text.
//
// Input is one declaration or relation per line, each prefixed by an
// enumeration token terminated by '.':
//
//	1. Car is a physical object.
//	2. Driving is a process.
//	3. Driving requires Car.
//	4. Driver and Passenger handles Driving.
//
// Recognized shapes, in precedence order:
//
//	<Name> is ... object          object declaration
//	<Name> is ... process         process declaration
//	<Objects> handles <Process>   agent relations
//	<Process> <kw> <Objects>      typed relations, kw ∈ affects|requires|yields|consumes
//
// Object lists accept ',' and " and " as separators. Keywords of typed
// relations are matched as plain substrings in the fixed priority order
// affects, requires, yields, consumes; only the first match is honored, so
// "Driving requires Car that affects Road" classifies as "affects" with the
// process "Driving requires Car that".
//
// Every name, whether declared or only mentioned in a relation, is recorded
// in a single Registry. Relations are kept in input order and are never
// deduplicated.
package opl
