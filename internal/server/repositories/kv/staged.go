package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type loadFunc func(ctx context.Context, key Key) ([]byte, bool, error)

// staged buffers the writes of one invocation on top of a backend reader.
type staged struct {
	load   loadFunc
	now    func() time.Time
	writes map[Key][]byte
	order  []Key

	deadline    time.Time
	newDeadline time.Time
	extended    bool
}

func newStaged(load loadFunc, now func() time.Time, deadline time.Time) *staged {
	return &staged{
		load:     load,
		now:      now,
		writes:   make(map[Key][]byte),
		deadline: deadline,
	}
}

func (s *staged) Get(ctx context.Context, key Key, dst any) (bool, error) {
	raw, ok := s.writes[key]
	if !ok {
		var err error
		raw, ok, err = s.load(ctx, key)
		if err != nil {
			return false, fmt.Errorf("get %s: %w", key, err)
		}
		if !ok {
			return false, nil
		}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *staged) Set(_ context.Context, key Key, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if _, seen := s.writes[key]; !seen {
		s.order = append(s.order, key)
	}
	s.writes[key] = raw
	return nil
}

func (s *staged) ExtendRetention(_ context.Context, minTTL, targetTTL time.Duration) error {
	if minTTL < 0 || targetTTL < minTTL {
		return fmt.Errorf("invalid retention window: min %s, target %s", minTTL, targetTTL)
	}
	now := s.now()
	current := s.deadline
	if s.extended {
		current = s.newDeadline
	}
	if current.Sub(now) >= minTTL {
		return nil
	}
	s.newDeadline = now.Add(targetTTL)
	s.extended = true
	return nil
}

// each calls fn for every staged write in first-write order.
func (s *staged) each(fn func(key Key, value []byte) error) error {
	for _, k := range s.order {
		if err := fn(k, s.writes[k]); err != nil {
			return err
		}
	}
	return nil
}
