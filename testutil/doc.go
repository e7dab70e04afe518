// Package testutil provides testing utilities for subspace.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded point generators and brute-force references to check
// subspace stats against.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	points := rng.GaussianPoints(8, 256)                  // 8×256, one point per column
//	flat := rng.ScaledGaussianPoints([]float64{5, 1, 0}, 64) // anisotropic
//
// # Ground Truth
//
//	mean := testutil.BruteForceMean(points, 0, 256)
//	cov := testutil.Covariance(points, 0, 256)
//	err := testutil.OrthonormalityError(stat.Eigenvectors())
package testutil
