package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Keys held per shopper session. Each key has a single writing component.
const (
	KeyAuthToken     = "authToken"     // identity
	KeyUserEmail     = "userEmail"     // identity
	KeyProviderEmail = "providerEmail" // identity, third-party sign-in
	KeyAdminToken    = "adminToken"    // admin login, cleared by the admin guard
	KeyAdminUser     = "adminUser"     // admin login, cleared by the admin guard
	KeyCart          = "cart"          // cart mirror
)

// Store is unstructured key-value storage scoped by session id.
// Writes are last-writer-wins; there is no locking across keys.
type Store interface {
	Get(ctx context.Context, sid, key string) (string, bool, error)
	Set(ctx context.Context, sid, key, value string) error
	Delete(ctx context.Context, sid string, keys ...string) error
}

// MemoryStore keeps sessions in process. Used when no Redis is configured and in tests.
// Every read or write slides the expiry; StartSweeper drops sessions nobody comes back to.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*memorySession
}

type memorySession struct {
	values  map[string]string
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*memorySession),
	}
}

func (m *MemoryStore) live(sid string) *memorySession {
	s, ok := m.sessions[sid]
	if !ok {
		return nil
	}
	if m.ttl > 0 && m.now().After(s.expires) {
		delete(m.sessions, sid)
		return nil
	}
	return s
}

func (m *MemoryStore) Get(_ context.Context, sid, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.live(sid)
	if s == nil {
		return "", false, nil
	}
	s.expires = m.now().Add(m.ttl)
	v, ok := s.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, sid, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.live(sid)
	if s == nil {
		s = &memorySession{values: make(map[string]string)}
		m.sessions[sid] = s
	}
	s.values[key] = value
	s.expires = m.now().Add(m.ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sid string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.live(sid)
	if s == nil {
		return nil
	}
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

// Sweep drops every expired session and reports how many went
func (m *MemoryStore) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for sid, s := range m.sessions {
		if now.After(s.expires) {
			delete(m.sessions, sid)
			n++
		}
	}
	return n
}

// Len reports how many sessions are held, expired or not
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StartSweeper runs Sweep every interval until ctx is done
func (m *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration, log zerolog.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					log.Debug().Int("sessions", n).Msg("expired sessions swept")
				}
			}
		}
	}()
}
