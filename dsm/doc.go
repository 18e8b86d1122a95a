// SPDX-License-Identifier: MIT

// Package dsm builds Design Structure Matrices from extracted OPL relations.
//
// For processes P (rows) and objects O (columns) a DSM holds:
//
//	PO     label matrix, cell = first letter of the last relation keyword or ""
//	PONum  binary incidence, cell = 1 if any relation links the pair
//	PP     PONum · PONumᵀ  (processes sharing objects)
//	OO     PONumᵀ · PONum  (objects sharing processes)
//
// PP and OO are symmetric; diag(PP) holds each process's distinct object
// count and diag(OO) each object's distinct process count.
//
// A DSM is never modified after Build. Reordering goes through Permute,
// which returns a new DSM and recomputes PP and OO from the permuted PONum.
package dsm
