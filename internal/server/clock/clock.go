// Package clock provides the ledger's time source. Timestamps are unix
// seconds.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() uint64
}

// System reads the wall clock.
type System struct{}

func (System) Now() uint64 { return uint64(time.Now().Unix()) }

// Monotonic never returns a value smaller than one it has already returned,
// even if the wrapped clock steps backwards.
type Monotonic struct {
	mu   sync.Mutex
	src  Clock
	last uint64
}

func NewMonotonic(src Clock) *Monotonic {
	return &Monotonic{src: src}
}

func (m *Monotonic) Now() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if now := m.src.Now(); now > m.last {
		m.last = now
	}
	return m.last
}

// Manual is a settable clock for tests.
type Manual struct {
	mu  sync.Mutex
	now uint64
}

func NewManual(now uint64) *Manual { return &Manual{now: now} }

func (m *Manual) Now() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Set(now uint64) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += uint64(d / time.Second)
	m.mu.Unlock()
}

// Time converts a ledger timestamp to time.Time.
func Time(ts uint64) time.Time {
	return time.Unix(int64(ts), 0).UTC()
}
