package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GautamArjun/packrat-demo/internal/observability/metrics"
	"github.com/GautamArjun/packrat-demo/pkg/logging"
)

// RegistryConfig configures the in-memory session registry.
type RegistryConfig struct {
	Machine     Options
	Pacer       Pacer
	IdleTimeout time.Duration
	Transcripts *TranscriptStore
	Logger      *logging.Logger
	Metrics     *metrics.FunnelMetrics
	Now         func() time.Time
}

// Registry holds live sessions by id. Sessions never outlive the process.
type Registry struct {
	cfg    RegistryConfig
	logger *logging.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Registry{
		cfg:      cfg,
		logger:   cfg.Logger,
		sessions: make(map[string]*Session),
	}
}

// Create registers a fresh session in GREETING. The caller starts it.
func (r *Registry) Create() *Session {
	id := uuid.NewString()
	sess := NewSession(id, NewMachine(r.cfg.Machine), SessionConfig{
		Pacer:   r.cfg.Pacer,
		Logger:  r.cfg.Logger,
		Metrics: r.cfg.Metrics,
		Now:     r.cfg.Now,
	})
	if r.cfg.Transcripts != nil {
		sess.Subscribe(r.cfg.Transcripts.Mirror(r.logger))
	}

	r.mu.Lock()
	r.sessions[id] = sess
	n := len(r.sessions)
	r.mu.Unlock()

	r.cfg.Metrics.SetActiveSessions(n)
	r.logger.Info("session created", "session_id", id)
	return sess
}

// Get returns the session or ErrSessionNotFound.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Remove drops a session. Unknown ids are ignored.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()
	r.cfg.Metrics.SetActiveSessions(n)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Transcripts returns the configured transcript mirror, possibly nil.
func (r *Registry) Transcripts() *TranscriptStore {
	return r.cfg.Transcripts
}

// Sweep evicts sessions idle for longer than the idle timeout. Sessions in
// the middle of a reply sequence are kept.
func (r *Registry) Sweep() int {
	if r.cfg.IdleTimeout <= 0 {
		return 0
	}
	cutoff := r.cfg.Now().Add(-r.cfg.IdleTimeout)

	r.mu.Lock()
	evicted := 0
	for id, sess := range r.sessions {
		if sess.Busy() || sess.LastActive().After(cutoff) {
			continue
		}
		delete(r.sessions, id)
		evicted++
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if evicted > 0 {
		r.cfg.Metrics.SetActiveSessions(n)
		r.logger.Info("idle sessions evicted", "evicted", evicted, "remaining", n)
	}
	return evicted
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
