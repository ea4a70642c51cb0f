// Package chart renders a kNN query as a static scatter chart with
// gonum.org/v1/plot: all points, the query, its neighbors and a dashed
// line from the query to each neighbor. Axis ranges, ticks and aspect
// ratio are fixed by Config rather than derived from the data.
package chart
