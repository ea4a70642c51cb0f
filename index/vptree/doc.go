// Package vptree adapts gonum's vantage-point tree to index.Index. Only
// metrics that satisfy the triangle inequality are accepted. Queries run in
// two passes so that equidistant points at the k-th position are resolved
// by insertion index.
package vptree
