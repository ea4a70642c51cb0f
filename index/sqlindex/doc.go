// Package sqlindex answers kNN queries with SQL: points are stored as BLOBs
// in an in-memory SQLite table and ordered by one of the vec_* scalar
// functions registered by package engine.
package sqlindex
