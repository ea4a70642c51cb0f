// Package index defines a minimal abstraction for nearest-neighbor indexes
// that are built once from a point set and queried for the k closest
// points. Implementations in this module include a brute-force baseline, a
// cover tree, a gonum vantage-point tree and an in-memory SQLite scan.
package index
