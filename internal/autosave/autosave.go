// Package autosave periodically persists a project snapshot. Saves are
// rate limited independently of the nominal tick so a burst of rapid
// edits cannot cause a save storm.
package autosave

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bep/debounce"
)

// Config tunes the saver. Zero values select the defaults.
type Config struct {
	Interval time.Duration // nominal tick between background saves (default 30s)
	MinGap   time.Duration // minimum spacing between two saves (default 5s)
	Debounce time.Duration // burst damping window for Notify (default 500ms)
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 30 * time.Second
	}
	if c.MinGap <= 0 {
		c.MinGap = 5 * time.Second
	}
	if c.Debounce <= 0 {
		c.Debounce = 500 * time.Millisecond
	}
	return c
}

// SnapshotFunc produces a consistent serialized snapshot. It is called
// from the saver's goroutine; the owner must make it safe to call
// concurrently with edits (e.g. by dispatching onto the editing
// goroutine and waiting).
type SnapshotFunc func() ([]byte, error)

// WriteFunc persists a produced snapshot.
type WriteFunc func([]byte) error

// Saver triggers snapshot writes on a timer and on edit notifications.
type Saver struct {
	cfg      Config
	snapshot SnapshotFunc
	write    WriteFunc
	debounce func(func())

	mu       sync.Mutex
	lastSave time.Time
	saves    int
}

// New builds a saver; Run must be started for timed saves.
func New(cfg Config, snapshot SnapshotFunc, write WriteFunc) *Saver {
	cfg = cfg.withDefaults()
	return &Saver{
		cfg:      cfg,
		snapshot: snapshot,
		write:    write,
		debounce: debounce.New(cfg.Debounce),
	}
}

// Run ticks until the context is cancelled.
func (s *Saver) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.trySave()
		}
	}
}

// Notify signals that an edit happened. Bursts collapse into one save
// attempt after the debounce window.
func (s *Saver) Notify() {
	s.debounce(s.trySave)
}

// Flush saves immediately, bypassing the rate limit. Used on shutdown.
func (s *Saver) Flush() error {
	data, err := s.snapshot()
	if err != nil {
		return err
	}
	if err := s.write(data); err != nil {
		return err
	}
	s.mu.Lock()
	s.lastSave = time.Now()
	s.saves++
	s.mu.Unlock()
	return nil
}

// Saves reports how many snapshots were written.
func (s *Saver) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *Saver) trySave() {
	s.mu.Lock()
	if time.Since(s.lastSave) < s.cfg.MinGap {
		s.mu.Unlock()
		return
	}
	// Reserve the slot before the (possibly slow) write so a concurrent
	// trigger cannot start a second save.
	s.lastSave = time.Now()
	s.mu.Unlock()

	data, err := s.snapshot()
	if err != nil {
		log.Printf("[!] autosave: snapshot failed: %v", err)
		return
	}
	if err := s.write(data); err != nil {
		log.Printf("[!] autosave: write failed: %v", err)
		return
	}

	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
}
