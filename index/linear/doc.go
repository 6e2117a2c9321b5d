// Package linear provides a baseline metric index that answers range queries
// by scanning every element. It has no build cost and serves as the
// reference result for the tree indexes.
package linear
