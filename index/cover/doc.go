// Package cover provides a Euclidean kNN index backed by the cover tree in
// internal/cover/tree. Distances inside the tree are float32; every point
// within rounding distance of the k-th candidate is rescored in float64 so
// results match the other indexes.
package cover
