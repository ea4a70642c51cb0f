// Package bruteforce provides a simple index that answers kNN queries by
// scanning all points and scoring them with a vector.Metric. It supports
// every metric and serves as the reference the tree indexes are checked
// against.
package bruteforce
