package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/metrics"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/render"
)

// ErrSessionNotFound is returned for unknown or evicted session ids.
var ErrSessionNotFound = errors.New("session not found")

const minJanitorInterval = time.Second

// Manager keeps the live sessions of the server.
type Manager struct {
	cfg       Config
	providers Providers
	renderer  *render.Renderer
	idleTTL   time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager. An idleTTL of zero disables eviction.
func NewManager(cfg Config, providers Providers, renderer *render.Renderer, idleTTL time.Duration) *Manager {
	return &Manager{
		cfg:       cfg,
		providers: providers,
		renderer:  renderer,
		idleTTL:   idleTTL,
		sessions:  make(map[string]*Session),
	}
}

// Create opens a session and runs its init action.
func (m *Manager) Create(ctx context.Context) (string, models.View, error) {
	id := uuid.NewString()
	s := New(ctx, id, m.cfg, m.providers, m.renderer)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	metrics.SessionOpened()

	view, err := s.Dispatch(ctx, models.Action{Type: models.ActionInit})
	if err != nil {
		_ = m.Close(id)
		return "", models.View{}, err
	}

	logger.Log.Infow("session created", "session_id", id)
	return id, view, nil
}

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// View returns the last view of a session.
func (m *Manager) View(id string) (models.View, error) {
	s, err := m.Get(id)
	if err != nil {
		return models.View{}, err
	}
	return s.View(), nil
}

// Dispatch applies a user action to a session.
func (m *Manager) Dispatch(ctx context.Context, id string, a models.Action) (models.View, error) {
	s, err := m.Get(id)
	if err != nil {
		return models.View{}, err
	}
	return s.Dispatch(ctx, a)
}

// Subscribe follows the redraws of a session.
func (m *Manager) Subscribe(id string) (<-chan models.View, func(), error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.Subscribe()
	return ch, cancel, nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close removes and stops a session.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	metrics.SessionClosed()
	logger.Log.Infow("session closed", "session_id", id)
	return nil
}

// CloseAll stops every session.
func (m *Manager) CloseAll() {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		_ = m.Close(id)
	}
}

// Run evicts idle sessions until ctx is done, then closes the rest.
func (m *Manager) Run(ctx context.Context) {
	defer m.CloseAll()
	if m.idleTTL <= 0 {
		<-ctx.Done()
		return
	}

	interval := m.idleTTL / 2
	if interval < minJanitorInterval {
		interval = minJanitorInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.evictIdle(now); n > 0 {
				logger.Log.Infow("evicted idle sessions", "count", n)
			}
		}
	}
}

// evictIdle closes sessions unused for idleTTL that nobody is streaming.
func (m *Manager) evictIdle(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}

	m.mu.RLock()
	var idle []string
	for id, s := range m.sessions {
		if s.Subscribers() == 0 && s.IdleFor(now) >= m.idleTTL {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	evicted := 0
	for _, id := range idle {
		if m.Close(id) == nil {
			evicted++
		}
	}
	return evicted
}
