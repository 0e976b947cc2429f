// Package flowstore keeps one login flow and one registration flow per
// visitor, and forgets visitors that have been idle too long.
package flowstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/franceviagens/portal/internal/flow"
)

// DefaultTTL is how long an untouched visitor's flows are kept.
const DefaultTTL = 30 * time.Minute

// Factory builds the flows for a new visitor, speaking lang.
type Factory struct {
	Login    func(lang language.Tag) *flow.LoginFlow
	Register func(lang language.Tag) *flow.RegistrationFlow
}

type entry struct {
	login    *flow.LoginFlow
	register *flow.RegistrationFlow
	lastSeen time.Time
}

// Store maps visitor ids to their flows.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	factory Factory
	ttl     time.Duration
	now     func() time.Time
}

// New creates a Store. A non-positive ttl selects DefaultTTL.
func New(factory Factory, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[string]*entry),
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store) touch(visitorID string) *entry {
	e, ok := s.entries[visitorID]
	if !ok {
		e = &entry{}
		s.entries[visitorID] = e
	}
	e.lastSeen = s.now()
	return e
}

// Login returns the visitor's login flow, creating it on first use. lang only
// matters for a new flow.
func (s *Store) Login(visitorID string, lang language.Tag) *flow.LoginFlow {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.touch(visitorID)
	if e.login == nil {
		e.login = s.factory.Login(lang)
	}
	return e.login
}

// Register returns the visitor's registration flow, creating it on first use.
func (s *Store) Register(visitorID string, lang language.Tag) *flow.RegistrationFlow {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.touch(visitorID)
	if e.register == nil {
		e.register = s.factory.Register(lang)
	}
	return e.register
}

// Peek returns the visitor's flows without creating or touching them.
func (s *Store) Peek(visitorID string) (*flow.LoginFlow, *flow.RegistrationFlow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[visitorID]
	if !ok {
		return nil, nil
	}
	return e.login, e.register
}

// Reset forgets the visitor's flows, abandoning any submission still pending,
// so the next page view starts from empty flows. It creates nothing.
func (s *Store) Reset(visitorID string) {
	s.mu.Lock()
	e, ok := s.entries[visitorID]
	delete(s.entries, visitorID)
	s.mu.Unlock()

	if ok {
		e.abandon()
	}
}

func (e *entry) abandon() {
	if e.login != nil {
		e.login.Abandon()
	}
	if e.register != nil {
		e.register.Abandon()
	}
}

// Len returns the number of tracked visitors.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops visitors idle since before now-ttl, abandoning any submission
// they left pending. It returns the number of visitors removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	var stale []*entry
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			stale = append(stale, e)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, e := range stale {
		e.abandon()
	}
	return len(stale)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if n := s.Sweep(t); n > 0 {
				slog.Debug("Expired idle visitor flows", "count", n, "remaining", s.Len())
			}
		}
	}
}
