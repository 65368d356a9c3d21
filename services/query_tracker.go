package services

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for a query whose session has since started a
// newer one.
var ErrSuperseded = errors.New("query superseded by a newer request")

type session struct {
	generation uint64
	cancel     context.CancelFunc
}

// QueryTracker records the latest query generation per client session.
// Starting a query cancels the session's previous one. Generations are
// unique across sessions so a forgotten session never revives a stale
// ticket.
type QueryTracker struct {
	mu       sync.Mutex
	next     uint64
	sessions map[string]*session
}

func NewQueryTracker() *QueryTracker {
	return &QueryTracker{sessions: make(map[string]*session)}
}

// Ticket identifies one started query.
type Ticket struct {
	tracker    *QueryTracker
	key        string
	generation uint64
	cancel     context.CancelFunc
}

// Begin starts a query for key and returns a context that is canceled when
// a newer query for the same key begins. An empty key is never superseded.
func (t *QueryTracker) Begin(parent context.Context, key string) (context.Context, *Ticket) {
	ctx, cancel := context.WithCancel(parent)
	if key == "" {
		return ctx, &Ticket{cancel: cancel}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[key]
	if !ok {
		s = &session{}
		t.sessions[key] = s
	} else if s.cancel != nil {
		s.cancel()
	}
	t.next++
	s.generation = t.next
	s.cancel = cancel

	return ctx, &Ticket{tracker: t, key: key, generation: s.generation, cancel: cancel}
}

// Current reports whether no newer query has begun for the ticket's session.
func (tk *Ticket) Current() bool {
	if tk.tracker == nil {
		return true
	}
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	s, ok := tk.tracker.sessions[tk.key]
	return ok && s.generation == tk.generation
}

// Done releases the query's context and forgets the session when this was
// its latest query.
func (tk *Ticket) Done() {
	tk.cancel()
	if tk.tracker == nil {
		return
	}
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	if s, ok := tk.tracker.sessions[tk.key]; ok && s.generation == tk.generation {
		delete(tk.tracker.sessions, tk.key)
	}
}

// Active returns the number of sessions with a running query.
func (t *QueryTracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
