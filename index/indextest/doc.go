// Package indextest provides a shared conformance suite for index.Index
// implementations.
//
// This package is intended for use in tests only. It provides the demo
// point set, seeded random point sets, and Run, which checks ordering, k
// bounds, dimension checks and agreement with the brute-force baseline.
package indextest
