// Package kv is the ledger's durable store: a mapping from composite keys to
// JSON-encoded values, with invocation-level atomicity and a retention
// window that callers can extend.
package kv

import (
	"context"
	"time"
)

// Key is a (namespace, discriminant) pair.
type Key struct {
	Namespace    string
	Discriminant string
}

func (k Key) String() string { return k.Namespace + ":" + k.Discriminant }

// Store is the view of the durable store handed to a single invocation.
// Writes become visible to later reads of the same invocation immediately
// and to other invocations only after the invocation succeeds.
type Store interface {
	// Get decodes the value stored under key into dst. It reports false
	// without touching dst when the key is absent.
	Get(ctx context.Context, key Key, dst any) (bool, error)
	Set(ctx context.Context, key Key, value any) error
	// ExtendRetention pushes the retention deadline to now+targetTTL when
	// less than minTTL of it remains.
	ExtendRetention(ctx context.Context, minTTL, targetTTL time.Duration) error
}

// Host runs invocations against the store one at a time. If fn returns an
// error none of its writes are committed.
type Host interface {
	Invoke(ctx context.Context, fn func(ctx context.Context, s Store) error) error
	// Retention reports the current retention deadline (zero if never set).
	Retention(ctx context.Context) (time.Time, error)
	Close() error
}
