// Package vector defines the point model shared by the indexes in this
// module. It includes:
//   - Point and Points with dimension validation
//   - Metric: Euclidean, Manhattan, Chebyshev and cosine distances
//   - Point encoding (BLOB) used by the SQLite functions
package vector
