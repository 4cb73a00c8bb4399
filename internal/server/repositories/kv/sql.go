package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/dbx"
)

const retentionMetaKey = "retention_deadline"

// SQLHost stores values in the kv table of a Postgres or SQLite database.
// Each invocation runs in one transaction; staged writes are flushed only
// after the invocation function succeeds.
type SQLHost struct {
	mu      sync.Mutex
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func NewSQLHost(db *sql.DB, dialect Dialect) *SQLHost {
	return &SQLHost{db: db, dialect: dialect, now: time.Now}
}

func (h *SQLHost) Invoke(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return dbx.WithTx(ctx, h.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if h.dialect.Lock != "" {
			if _, err := tx.ExecContext(ctx, h.dialect.Lock); err != nil {
				return fmt.Errorf("db error: lock: %w", err)
			}
		}

		deadline, err := h.loadDeadline(ctx, tx)
		if err != nil {
			return err
		}

		st := newStaged(func(ctx context.Context, key Key) ([]byte, bool, error) {
			var value []byte
			err := tx.QueryRowContext(ctx, h.dialect.Get, key.Namespace, key.Discriminant).Scan(&value)
			if errors.Is(err, sql.ErrNoRows) {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, fmt.Errorf("db error: %w", err)
			}
			return value, true, nil
		}, h.now, deadline)

		if err := fn(ctx, st); err != nil {
			return err
		}

		if err := st.each(func(key Key, value []byte) error {
			if _, err := tx.ExecContext(ctx, h.dialect.Upsert, key.Namespace, key.Discriminant, value); err != nil {
				return fmt.Errorf("db error: set %s: %w", key, err)
			}
			return nil
		}); err != nil {
			return err
		}

		if st.extended {
			if _, err := tx.ExecContext(ctx, h.dialect.SetMeta, retentionMetaKey, st.newDeadline.Unix()); err != nil {
				return fmt.Errorf("db error: set retention: %w", err)
			}
		}
		return nil
	})
}

func (h *SQLHost) loadDeadline(ctx context.Context, db dbx.DBTX) (time.Time, error) {
	var unix int64
	err := db.QueryRowContext(ctx, h.dialect.GetMeta, retentionMetaKey).Scan(&unix)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("db error: get retention: %w", err)
	}
	return time.Unix(unix, 0), nil
}

func (h *SQLHost) Retention(ctx context.Context) (time.Time, error) {
	return h.loadDeadline(ctx, h.db)
}

func (h *SQLHost) Close() error { return h.db.Close() }
