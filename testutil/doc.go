// Package testutil provides testing utilities for geogo.
//
// This package is intended for use in tests and benchmarks only. It provides
// helpers for generating random point sets, computing exact nearest
// neighbors as ground truth, and verifying search recall.
package testutil
