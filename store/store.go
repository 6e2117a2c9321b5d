package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no snapshot is stored under a name.
	ErrNotFound = errors.New("store: snapshot not found")
	// ErrCorrupt is returned when a stored row cannot describe a valid snapshot.
	ErrCorrupt = errors.New("store: corrupt snapshot")
)

// MaxSnapshotSize bounds the uncompressed size of a single snapshot.
const MaxSnapshotSize = 1 << 30

// Store keeps named snapshots in a SQLite table. It is safe for concurrent
// use.
type Store struct {
	db    *sql.DB
	opts  *options
	codec *codec
}

// New creates a Store on db and ensures its table exists.
func New(ctx context.Context, db *sql.DB, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	o := newOptions(opts)
	switch o.compression {
	case CompressionNone, CompressionLZ4, CompressionZSTD:
	default:
		return nil, fmt.Errorf("store: unsupported compression %v", o.compression)
	}
	if err := EnsureSchema(ctx, db, o.table); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", o.table, err)
	}
	c, err := newCodec()
	if err != nil {
		return nil, err
	}
	return &Store{db: db, opts: o, codec: c}, nil
}

// Put stores data under name, replacing any previous snapshot.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("store: Put called with empty name")
	}
	if len(data) > MaxSnapshotSize {
		return fmt.Errorf("store: put %s: %d bytes exceeds %d", name, len(data), MaxSnapshotSize)
	}
	payload, applied, err := s.codec.compress(data, s.opts.compression)
	if err != nil {
		return fmt.Errorf("store: compress %s: %w", name, err)
	}
	stmt := fmt.Sprintf(`
INSERT INTO %s(name, compression, size, payload, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(name) DO UPDATE SET
  compression = excluded.compression,
  size = excluded.size,
  payload = excluded.payload,
  updated_at = excluded.updated_at`, s.opts.table)
	if _, err := s.db.ExecContext(ctx, stmt, name, int64(applied), int64(len(data)), payload); err != nil {
		return fmt.Errorf("store: put %s: %w", name, err)
	}
	s.opts.logger.Debug("snapshot stored", "name", name, "size", len(data), "stored", len(payload), "compression", applied.String())
	return nil
}

// Get returns the snapshot stored under name, or ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT compression, size, payload FROM %s WHERE name = ?`, s.opts.table), name)
	var compression, size int64
	var payload []byte
	if err := row.Scan(&compression, &size, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("store: get %s: %w", name, err)
	}
	if size < 0 || size > MaxSnapshotSize {
		s.opts.logger.Warn("snapshot size out of range", "name", name, "size", size)
		return nil, fmt.Errorf("%w %s: size %d", ErrCorrupt, name, size)
	}
	data, err := s.codec.decompress(payload, Compression(compression), int(size))
	if err != nil {
		s.opts.logger.Warn("snapshot decode failed", "name", name, "error", err)
		return nil, fmt.Errorf("store: decompress %s: %w", name, err)
	}
	return data, nil
}

// Delete removes the snapshot stored under name. Deleting a missing name
// returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE name = ?`, s.opts.table), name)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	s.opts.logger.Debug("snapshot deleted", "name", name)
	return nil
}

// Names lists the stored snapshot names in ascending order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT name FROM %s ORDER BY name`, s.opts.table))
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// Close releases the compression resources. It does not close the database.
func (s *Store) Close() error {
	return s.codec.close()
}
