package store

import (
	"io"
	"log/slog"
)

// Option configures a Store.
type Option func(*options)

type options struct {
	table       string
	compression Compression
	logger      *slog.Logger
}

func newOptions(opts []Option) *options {
	o := &options{
		table:       DefaultTable,
		compression: CompressionZSTD,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTable overrides the snapshot table name. The name is interpolated into
// SQL and must come from trusted input.
func WithTable(table string) Option {
	return func(o *options) {
		if table != "" {
			o.table = table
		}
	}
}

// WithCompression selects the compression applied to new snapshots.
// Stored snapshots are always read back with the compression they were
// written with.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithLogger sets the logger used for store events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
