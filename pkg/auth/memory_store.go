package auth

import (
	"context"
	"sync"
)

// MemoryStore implements UserStore with an in-process map. Intended for
// tests and single-node development setups.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]User
}

// NewMemoryStore creates an in-memory user store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[int64]User)}
}

func (m *MemoryStore) FindByUsername(ctx context.Context, username string) (User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

func (m *MemoryStore) FindByLookup(ctx context.Context, lookup string) (User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Lookup == lookup {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

func (m *MemoryStore) Create(ctx context.Context, user User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return user.ID, nil
}

func (m *MemoryStore) UpdateLoginHash(ctx context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.users[id]
	u.Hash = hash
	m.users[id] = u
	return nil
}

func (m *MemoryStore) UpdatePassword(ctx context.Context, id int64, record string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.users[id]
	u.Password = record
	m.users[id] = u
	return nil
}

// SetStatus updates an account's status flag
func (m *MemoryStore) SetStatus(id int64, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.users[id]
	u.Status = status
	m.users[id] = u
}

// Get returns the stored user by id
func (m *MemoryStore) Get(id int64) (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	return u, ok
}
