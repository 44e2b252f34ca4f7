// Package session holds live review sessions in memory. Sessions are
// never persisted; the registry is the only place they live between
// requests.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/review"
)

type entry struct {
	sess      *review.Session
	learnerID int64
	lastSeen  time.Time
}

// Registry maps session ids to live sessions, scoped per learner.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
	log     *logger.Logger
}

// NewRegistry creates a registry whose sessions expire after ttl of
// inactivity.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:     ttl,
		entries: make(map[string]*entry),
		log:     logger.Default().WithPrefix("session_registry"),
	}
}

func newSessionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Put registers a session for the learner and returns its id.
func (r *Registry) Put(learnerID int64, sess *review.Session) string {
	id := newSessionID()
	r.mu.Lock()
	r.entries[id] = &entry{sess: sess, learnerID: learnerID, lastSeen: time.Now()}
	r.mu.Unlock()
	r.log.Debug("session registered: id=%s, learner_id=%d", id, learnerID)
	return id
}

// Get returns the learner's session, or nil when it does not exist or
// belongs to another learner. Access refreshes the TTL.
func (r *Registry) Get(id string, learnerID int64) *review.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.learnerID != learnerID {
		return nil
	}
	e.lastSeen = time.Now()
	return e.sess
}

// Remove discards the learner's session. Already-issued attempt writes
// stay; there is no rollback for an abandoned session.
func (r *Registry) Remove(id string, learnerID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.learnerID != learnerID {
		return false
	}
	delete(r.entries, id)
	r.log.Debug("session removed: id=%s", id)
	return true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep discards sessions idle longer than the TTL and returns how many
// were dropped.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.entries, id)
			dropped++
		}
	}
	if dropped > 0 {
		r.log.Info("swept %d expired sessions", dropped)
	}
	return dropped
}

// Start runs a background sweeper until the context is cancelled.
func (r *Registry) Start(ctx context.Context) {
	interval := r.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				r.log.Debug("session sweeper stopped")
				return
			case now := <-ticker.C:
				r.Sweep(now)
			}
		}
	}()
}
