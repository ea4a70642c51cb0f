// Package knn provides NearestNeighbors, an unsupervised k-nearest-neighbors
// estimator. It is fitted once on a point set and then returns, for a query
// point, the indices of and distances to its k closest points.
//
// Usage:
//
//	nn := knn.New(knn.WithNeighbors(2), knn.WithMetric(vector.Euclidean))
//	if err := nn.Fit(points); err != nil { ... }
//	result, err := nn.KNeighbors(vector.Point{3.5, 3.5})
package knn
