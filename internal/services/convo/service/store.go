// Package service implements the keyed in-memory conversation store
package service

import (
	"context"
	"sync"
	"time"

	"cinechat/internal/platform/logger"
	"cinechat/internal/services/convo/domain"
)

// Store keeps every live conversation in memory
// A coarse map lock guards membership and a per-entry lock serializes turns,
// so concurrent turns on one conversation queue up while different
// conversations stay independent
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	ttl time.Duration
	log *logger.Logger
}

type entry struct {
	mu      sync.Mutex
	state   domain.State
	touched time.Time
}

// NewStore constructs a Store
// ttl of zero disables idle eviction entirely
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		log:     logger.Named("convo"),
	}
}

// Update runs fn on the conversation under its lock, creating it if absent
func (s *Store) Update(id string, fn func(*domain.State)) {
	e := s.entry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.state)
	e.touched = time.Now()
}

// Snapshot returns a deep copy of the conversation, false when absent
func (s *Store) Snapshot(id string) (domain.State, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return domain.State{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone(), true
}

// RecentTitles returns the title window without creating the conversation
func (s *Store) RecentTitles(id string) []string {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.state.Context.RecentTitles...)
}

// Delete removes the conversation, false when absent
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	return true
}

// Stats counts live conversations and logged messages
func (s *Store) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := domain.Stats{ActiveConversations: len(s.entries)}
	for _, e := range s.entries {
		e.mu.Lock()
		out.TotalMessages += len(e.state.Messages)
		e.mu.Unlock()
	}
	return out
}

// RunJanitor sweeps idle conversations every interval until ctx is done
// It returns immediately when eviction is disabled
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep(time.Now())
		}
	}
}

func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, e := range s.entries {
		if now.Sub(e.touched) > s.ttl {
			delete(s.entries, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.log.Debug().Int("evicted", evicted).Msg("idle conversations swept")
	}
}

func (s *Store) entry(id string) *entry {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[id]; ok {
		return e
	}
	e = &entry{state: domain.NewState(time.Now()), touched: time.Now()}
	s.entries[id] = e
	return e
}
