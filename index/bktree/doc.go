// Package bktree implements a Burkhard-Keller tree: a metric index suited
// to distance functions that take few distinct values, such as edit or
// Hamming distance. Children are keyed by their exact distance to the
// parent, and range queries prune children with the triangle inequality.
//
// A Tree is not safe for concurrent mutation; callers must serialize
// Insert against queries.
package bktree
