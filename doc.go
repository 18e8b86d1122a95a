// SPDX-License-Identifier: MIT

// Package opldsm converts Object-Process Language (OPL) models into Design
// Structure Matrices (DSMs).
//
// An OPL model is a list of enumerated English-like sentences:
//
//	1. Car is a physical object.
//	2. Driving is a process.
//	3. Driving requires Car.
//	4. Driver handles Driving.
//
// From it opldsm derives three matrices:
//
//	PO — process × object, cells hold the relation code (r, a, c, y, h)
//	PP — process × process, number of objects two processes share
//	OO — object × object, number of processes two objects share
//
// Optionally, rows and columns are reordered by normalized spectral
// clustering so that tightly coupled entities sit next to each other.
//
// Layout:
//
//	opl/         — line classifier: entities and relations from OPL text
//	matrix/      — dense matrices, validators, Jacobi eigen decomposition
//	dsm/         — PO / PO_num / PP / OO construction, permutation, tables
//	cluster/     — spectral partitioner, k-means++, DSM reordering
//	export/      — CSV writers for matrices and cluster reports
//	config/      — YAML configuration, defaults, validation, merging
//	pipeline/    — one-shot read → extract → build → cluster → write
//	cmd/opldsm/  — command-line entry point
//
// Quick start:
//
//	opldsm model.opl po.csv PO
//	opldsm --clusters 3 --seed 42 --cluster-report clusters.csv model.opl oo.csv OO
package opldsm
