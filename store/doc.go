// Package store persists index snapshots in SQLite. A snapshot is an opaque
// blob (usually produced by an index's Encode method) stored under a name,
// optionally compressed with LZ4 or ZSTD.
package store
