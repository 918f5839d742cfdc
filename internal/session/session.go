// Package session keeps per-terminal state: the receipt currently on
// display and a lock that lets one operation run at a time.
package session

import (
	"context"
	"sync"
)

type Session struct {
	ID string

	run     sync.Mutex
	mu      sync.RWMutex
	receipt string
}

// Do runs fn while holding the session lock. A second call on the same
// session waits until the first returns, or until ctx is done.
func (s *Session) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	acquired := make(chan struct{})
	go func() {
		s.run.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-ctx.Done():
		// hand the lock back once the waiter gets it
		go func() {
			<-acquired
			s.run.Unlock()
		}()
		return ctx.Err()
	}
	defer s.run.Unlock()

	return fn(ctx)
}

// Receipt is the text of the last bill generated on this terminal.
func (s *Session) Receipt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.receipt
}

func (s *Session) SetReceipt(text string) {
	s.mu.Lock()
	s.receipt = text
	s.mu.Unlock()
}

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it on first use.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = &Session{ID: id}
		r.sessions[id] = s
	}
	return s
}

// FromContext returns the session of the terminal bound to ctx.
func (r *Registry) FromContext(ctx context.Context) *Session {
	return r.Get(TerminalID(ctx))
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
