package kv

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisHost stores every value under prefix+namespace+":"+discriminant.
// Staged writes are committed with one MULTI/EXEC pipeline. Invocations are
// serialized within the process; run a single ledger process per keyspace.
type RedisHost struct {
	mu     sync.Mutex
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisHost(client *redis.Client, prefix string) *RedisHost {
	return &RedisHost{client: client, prefix: prefix, now: time.Now}
}

func (h *RedisHost) redisKey(key Key) string {
	return h.prefix + key.String()
}

func (h *RedisHost) metaKey() string {
	return h.prefix + "meta:" + retentionMetaKey
}

func (h *RedisHost) Invoke(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	deadline, err := h.Retention(ctx)
	if err != nil {
		return err
	}

	st := newStaged(func(ctx context.Context, key Key) ([]byte, bool, error) {
		data, err := h.client.Get(ctx, h.redisKey(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("redis error: %w", err)
		}
		return data, true, nil
	}, h.now, deadline)

	if err := fn(ctx, st); err != nil {
		return err
	}

	if len(st.order) == 0 && !st.extended {
		return nil
	}

	_, err = h.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		_ = st.each(func(key Key, value []byte) error {
			pipe.Set(ctx, h.redisKey(key), value, 0)
			return nil
		})
		if st.extended {
			pipe.Set(ctx, h.metaKey(), st.newDeadline.Unix(), 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis error: commit: %w", err)
	}
	return nil
}

func (h *RedisHost) Retention(ctx context.Context) (time.Time, error) {
	raw, err := h.client.Get(ctx, h.metaKey()).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("redis error: get retention: %w", err)
	}
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt retention deadline %q: %w", raw, err)
	}
	return time.Unix(unix, 0), nil
}

func (h *RedisHost) Close() error { return h.client.Close() }
