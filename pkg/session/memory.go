package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process. Suitable for a single instance.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	locks    map[string]chan struct{}
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates a MemoryStore with the given inactivity window.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		locks:    make(map[string]chan struct{}),
		ttl:      ttl,
		now:      time.Now,
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) live(s *Session) bool {
	return m.now().Sub(s.UpdatedAt) < m.ttl
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || !m.live(s) {
		return nil, nil
	}
	return s.Clone(), nil
}

func (m *MemoryStore) GetOrCreate(ctx context.Context, id, phone string) (*Session, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s != nil {
		if s.PhoneNumber != phone {
			return nil, ErrPhoneMismatch
		}
		return s, nil
	}
	return New(id, phone, m.now()), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := s.Clone()
	cp.UpdatedAt = m.now()
	m.sessions[s.ID] = cp
	s.UpdatedAt = cp.UpdatedAt
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, s := range m.sessions {
		if m.live(s) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = make(map[string]*Session)
	return nil
}

// Sweep physically removes sessions past the inactivity window.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if !m.live(s) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *MemoryStore) Lock(ctx context.Context, id string) (func(), error) {
	for {
		m.mu.Lock()
		held, busy := m.locks[id]
		if !busy {
			ch := make(chan struct{})
			m.locks[id] = ch
			m.mu.Unlock()
			return func() {
				m.mu.Lock()
				delete(m.locks, id)
				m.mu.Unlock()
				close(ch)
			}, nil
		}
		m.mu.Unlock()

		select {
		case <-held:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
