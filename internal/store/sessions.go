package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"flyer_builder/pkg/logger"
)

var (
	sessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flyer_sessions_created_total",
		Help: "Number of workspaces created for new sessions",
	})
	sessionsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flyer_sessions_evicted_total",
		Help: "Number of workspaces dropped by size or idle expiry",
	})
)

// Sessions maps session ids to workspaces. Idle sessions expire after the TTL and
// the least recently used one is dropped when the registry is full.
type Sessions struct {
	cache *expirable.LRU[string, *Workspace]
}

func NewSessions(maxSessions int, ttl time.Duration) *Sessions {
	onEvict := func(id string, ws *Workspace) {
		sessionsEvicted.Inc()
		logger.Log.WithField("session", id).
			WithField("idle", time.Since(ws.UpdatedAt()).Round(time.Second).String()).
			Debug("Workspace dropped")
	}
	return &Sessions{cache: expirable.NewLRU[string, *Workspace](maxSessions, onEvict, ttl)}
}

// Get returns the workspace for id and refreshes its expiry.
func (s *Sessions) Get(id string) (*Workspace, bool) {
	ws, ok := s.cache.Get(id)
	if ok {
		s.cache.Add(id, ws)
	}
	return ws, ok
}

// Acquire returns the workspace for id, creating one under a fresh id when id is
// empty or unknown. The returned id is the one to hand back to the client.
func (s *Sessions) Acquire(id string) (string, *Workspace) {
	if id != "" {
		if ws, ok := s.Get(id); ok {
			return id, ws
		}
	}

	id = uuid.NewString()
	ws := NewWorkspace()
	s.cache.Add(id, ws)
	sessionsCreated.Inc()
	return id, ws
}

// Remove ends a session and drops its workspace.
func (s *Sessions) Remove(id string) {
	s.cache.Remove(id)
}

func (s *Sessions) Len() int {
	return s.cache.Len()
}
