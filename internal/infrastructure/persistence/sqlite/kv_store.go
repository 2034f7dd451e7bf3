package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/dockframe/internal/application/port"
	"github.com/bnema/dockframe/internal/logging"
)

// KVStore is a port.KeyValueStore backed by the kv table.
type KVStore struct {
	lazy *LazyDB
}

var _ port.KeyValueStore = (*KVStore)(nil)

// NewKVStore creates a store over the database at dbPath. The file is opened
// and migrated on first use.
func NewKVStore(dbPath string) *KVStore {
	return &KVStore{lazy: NewLazyDB(dbPath)}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	db, err := s.lazy.DB(ctx)
	if err != nil {
		return "", false, err
	}

	var value string
	err = db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	db, err := s.lazy.DB(ctx)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().Str("key", key).Msg("setting kv entry")

	_, err = db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	db, err := s.lazy.DB(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	db, err := s.lazy.DB(ctx)
	if err != nil {
		return nil, err
	}

	// instr keeps the match case-sensitive, unlike LIKE.
	rows, err := db.QueryContext(ctx, `SELECT key FROM kv WHERE instr(key, ?) = 1 ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *KVStore) Close() error {
	return s.lazy.Close()
}
