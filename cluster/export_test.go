// SPDX-License-Identifier: MIT

package cluster

// Test bridge for white-box checks of the k-means stage; compiled only with
// the package tests.
var (
	ExportedKMeans      = kMeans
	ExportedCanonical   = canonical
	ExportedRNGFromSeed = rngFromSeed
	ExportedDeriveSeed  = deriveSeed
)
