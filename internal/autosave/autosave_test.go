package autosave

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func newCountingSaver(cfg Config) (*Saver, *atomic.Int64) {
	var writes atomic.Int64
	s := New(cfg,
		func() ([]byte, error) { return []byte("{}"), nil },
		func([]byte) error { writes.Add(1); return nil },
	)
	return s, &writes
}

func TestNotifyDebouncesBursts(t *testing.T) {
	s, writes := newCountingSaver(Config{
		Interval: time.Hour,
		MinGap:   time.Millisecond,
		Debounce: 20 * time.Millisecond,
	})

	// A burst of rapid edits collapses into a single save.
	for i := 0; i < 10; i++ {
		s.Notify()
	}
	time.Sleep(100 * time.Millisecond)

	if got := writes.Load(); got != 1 {
		t.Errorf("writes = %d, expected 1 after a burst", got)
	}
}

func TestMinGapRateLimits(t *testing.T) {
	s, writes := newCountingSaver(Config{
		Interval: time.Hour,
		MinGap:   time.Hour,
		Debounce: 5 * time.Millisecond,
	})

	s.Notify()
	time.Sleep(50 * time.Millisecond)
	s.Notify()
	time.Sleep(50 * time.Millisecond)

	if got := writes.Load(); got != 1 {
		t.Errorf("writes = %d, expected 1 (second save inside the min gap)", got)
	}
	if s.Saves() != 1 {
		t.Errorf("Saves() = %d, expected 1", s.Saves())
	}
}

func TestTimedSaves(t *testing.T) {
	s, writes := newCountingSaver(Config{
		Interval: 20 * time.Millisecond,
		MinGap:   time.Millisecond,
		Debounce: time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	time.Sleep(110 * time.Millisecond)
	cancel()

	if got := writes.Load(); got < 2 {
		t.Errorf("writes = %d, expected at least 2 timed saves", got)
	}
}

func TestFlushBypassesRateLimit(t *testing.T) {
	s, writes := newCountingSaver(Config{MinGap: time.Hour})

	if err := s.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("second Flush failed: %v", err)
	}
	if got := writes.Load(); got != 2 {
		t.Errorf("writes = %d, expected 2", got)
	}
}
