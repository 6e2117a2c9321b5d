// Package index defines the range-search contract shared by the metric
// indexes in this module (bktree, vptree and the linear baseline) and the
// element-sequence snapshot format they persist with.
package index
