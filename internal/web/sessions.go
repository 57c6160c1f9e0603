package web

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/todo-screen/internal/metrics"
	"github.com/idilsaglam/todo-screen/internal/todo"
	"github.com/idilsaglam/todo-screen/internal/view"
)

// session pairs one controller with the lock that serializes the requests
// of a single browser tab.
type session struct {
	id   string
	mu   sync.Mutex
	ctrl *todo.Controller
	seq  uint64 // newest client seq applied; guarded by mu

	lastSeen time.Time // guarded by sessionStore.mu
}

// apply runs fn under the session lock and returns the screen it produced.
func (s *session) apply(fn func(*todo.Controller)) view.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		fn(s.ctrl)
	}
	return view.Render(s.ctrl.State())
}

// fresh records seq as applied and reports whether it is newer than every
// seq seen so far. Zero means the action was not stamped and is always fresh.
// Callers must hold s.mu, which apply does.
func (s *session) fresh(seq uint64) bool {
	if seq == 0 {
		return true
	}
	if seq <= s.seq {
		return false
	}
	s.seq = seq
	return true
}

type sessionStore struct {
	mu   sync.Mutex
	m    map[string]*session
	idle time.Duration

	newController func() *todo.Controller
	metrics       *metrics.Recorder
}

func newSessionStore(idle time.Duration, newController func() *todo.Controller, rec *metrics.Recorder) *sessionStore {
	return &sessionStore{
		m:             map[string]*session{},
		idle:          idle,
		newController: newController,
		metrics:       rec,
	}
}

func (st *sessionStore) create() *session {
	sess := &session{
		id:   uuid.NewString(),
		ctrl: st.newController(),
	}
	st.mu.Lock()
	sess.lastSeen = time.Now()
	st.m[sess.id] = sess
	st.mu.Unlock()
	st.metrics.SessionOpened()
	return sess
}

func (st *sessionStore) get(id string) (*session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.m[id]
	if ok {
		sess.lastSeen = time.Now()
	}
	return sess, ok
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.m)
}

// sweep drops sessions idle for longer than st.idle as of now and returns
// how many it dropped.
func (st *sessionStore) sweep(now time.Time) int {
	cutoff := now.Add(-st.idle)
	st.mu.Lock()
	n := 0
	for id, sess := range st.m {
		if sess.lastSeen.Before(cutoff) {
			delete(st.m, id)
			n++
		}
	}
	st.mu.Unlock()
	for i := 0; i < n; i++ {
		st.metrics.SessionClosed()
	}
	return n
}

func (st *sessionStore) janitor(ctx context.Context, log *slog.Logger) {
	every := st.idle / 2
	if every < time.Second {
		every = time.Second
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.sweep(now); n > 0 {
				log.Debug("web: evicted idle sessions", "count", n, "active", st.len())
			}
		}
	}
}
