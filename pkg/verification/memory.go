package verification

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	code      Code
	expiresAt time.Time
}

// MemoryStore keeps codes in process.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]memoryEntry
	now   func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]memoryEntry), now: time.Now}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Put(_ context.Context, code Code, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.codes[code.Phone] = memoryEntry{code: code, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, phone string) (*Code, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.codes[phone]
	if !ok {
		return nil, ErrCodeNotFound
	}
	c := e.code
	return &c, nil
}

func (m *MemoryStore) Delete(_ context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.codes, phone)
	return nil
}

func (m *MemoryStore) IncrementAttempts(_ context.Context, phone string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.codes[phone]
	if !ok {
		return 0, ErrCodeNotFound
	}
	e.code.Attempts++
	m.codes[phone] = e
	return e.code.Attempts, nil
}

// Sweep removes codes whose storage window has passed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for phone, e := range m.codes {
		if now.After(e.expiresAt) {
			delete(m.codes, phone)
			removed++
		}
	}
	return removed
}
