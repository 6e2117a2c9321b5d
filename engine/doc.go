// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening connections and registering the metric SQL
// scalar functions, which let a linear range scan run inside SQLite. It keeps
// a thin surface so other packages share the same driver instance.
package engine
