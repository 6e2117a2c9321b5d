// Package vptree implements a vantage-point tree: a balanced binary metric
// index built by recursive median-distance partitioning.
//
// Insertion rebuilds the whole tree from its current values plus the new
// points. This keeps every node split at the median, which the pruning
// thresholds depend on, at a cost proportional to the total element count.
//
// A Tree is not safe for concurrent mutation; callers must serialize
// InsertAll against queries.
package vptree
