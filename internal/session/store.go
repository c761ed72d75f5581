package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by a Store when no live record exists for an id.
var ErrNotFound = errors.New("session not found")

// Data is the server-side record bound to a session cookie.
type Data struct {
	UserID    uint      `json:"user_id,omitempty"`
	Role      string    `json:"role,omitempty"`
	Flashes   []string  `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Data) Authenticated() bool {
	return d != nil && d.UserID != 0
}

// Store persists session records with a time-to-live.
type Store interface {
	SetSession(ctx context.Context, id string, data *Data, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*Data, error)
	DeleteSession(ctx context.Context, id string) error
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) SetSession(_ context.Context, id string, data *Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *data
	copied.Flashes = append([]string(nil), data.Flashes...)
	s.entries[id] = memoryEntry{data: copied, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context, id string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return nil, ErrNotFound
	}

	data := entry.data
	data.Flashes = append([]string(nil), entry.data.Flashes...)
	return &data, nil
}

func (s *MemoryStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Len reports the number of stored records, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
