package flow

import (
	"context"
	"sync"

	"github.com/franceviagens/portal/internal/domain"
)

// machine is the Idle/Submitting/Error/Success state shared by both flows.
// Only one request may be pending at a time; gen identifies it so that a
// continuation arriving after Abandon is dropped.
type machine struct {
	mu      sync.Mutex
	result  domain.Result
	settled domain.Result
	gen     uint64
	cancel  context.CancelFunc
	done    chan struct{}
}

// beginLocked enters Submitting. mu must be held and the state must not
// already be Submitting.
func (m *machine) beginLocked(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)
	m.gen++
	m.settled = m.result
	m.result = domain.Submitting()
	m.cancel = cancel
	m.done = make(chan struct{})
	return ctx, m.gen
}

// endLocked releases the pending request's resources and wakes Await callers.
func (m *machine) endLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
}

// finish applies r if the request identified by gen is still the pending one.
func (m *machine) finish(gen uint64, r domain.Result) (domain.Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen || m.result.State != domain.StateSubmitting {
		return m.result, false
	}
	m.result = r
	m.endLocked()
	return r, true
}

// revert drops the request identified by gen and restores the state that was
// displayed before it started.
func (m *machine) revert(gen uint64) domain.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen == m.gen && m.result.State == domain.StateSubmitting {
		m.gen++
		m.result = m.settled
		m.endLocked()
	}
	return m.result
}

// Abandon cancels a pending submission. Its outcome is never displayed and the
// flow shows what it showed before the submission began.
func (m *machine) Abandon() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.result.State != domain.StateSubmitting {
		return
	}
	m.gen++
	m.result = m.settled
	m.endLocked()
}

// Snapshot returns the currently displayed result.
func (m *machine) Snapshot() domain.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}

// Await blocks until no submission is pending, then returns the displayed result.
func (m *machine) Await(ctx context.Context) (domain.Result, error) {
	m.mu.Lock()
	done, r := m.done, m.result
	m.mu.Unlock()

	if done == nil {
		return r, nil
	}
	select {
	case <-done:
		return m.Snapshot(), nil
	case <-ctx.Done():
		return domain.Submitting(), ctx.Err()
	}
}
