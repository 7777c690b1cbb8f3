package store

import (
	"context"
	"sync"
	"time"
)

// TokenStore persists refresh-token hashes. The MySQL repository
// implements it against the refresh_tokens table; MemoryTokens backs
// the REST-fallback deployment, where no database is configured and
// sessions may simply die with the process.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (string, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

type memoryToken struct {
	userID  string
	expires time.Time
	revoked bool
}

// MemoryTokens is an in-process TokenStore.
type MemoryTokens struct {
	mu     sync.Mutex
	tokens map[string]*memoryToken
}

func NewMemoryTokens() *MemoryTokens {
	return &MemoryTokens{tokens: make(map[string]*memoryToken)}
}

func (m *MemoryTokens) StoreRefresh(_ context.Context, userID, tokenHash string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[tokenHash] = &memoryToken{userID: userID, expires: exp}
	return nil
}

func (m *MemoryTokens) ValidateRefresh(_ context.Context, tokenHash string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[tokenHash]
	if !ok || t.revoked || time.Now().UTC().After(t.expires) {
		return "", ErrNotFound
	}
	return t.userID, nil
}

func (m *MemoryTokens) RevokeByHash(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[tokenHash]; ok {
		t.revoked = true
	}
	return nil
}

func (m *MemoryTokens) RevokeAllForUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}
