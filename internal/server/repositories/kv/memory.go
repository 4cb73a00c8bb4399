package kv

import (
	"context"
	"sync"
	"time"
)

// MemoryHost keeps everything in process memory. Invocations are serialized
// by a single mutex.
type MemoryHost struct {
	mu       sync.Mutex
	data     map[Key][]byte
	deadline time.Time
	now      func() time.Time
}

func NewMemoryHost() *MemoryHost {
	return &MemoryHost{data: make(map[Key][]byte), now: time.Now}
}

func (h *MemoryHost) Invoke(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	st := newStaged(func(_ context.Context, key Key) ([]byte, bool, error) {
		v, ok := h.data[key]
		return v, ok, nil
	}, h.now, h.deadline)

	if err := fn(ctx, st); err != nil {
		return err
	}

	_ = st.each(func(key Key, value []byte) error {
		h.data[key] = value
		return nil
	})
	if st.extended {
		h.deadline = st.newDeadline
	}
	return nil
}

func (h *MemoryHost) Retention(context.Context) (time.Time, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.deadline, nil
}

func (h *MemoryHost) Close() error { return nil }
