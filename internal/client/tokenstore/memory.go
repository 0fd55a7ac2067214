package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore keeps the pair in process memory only. It is used for
// ephemeral sessions and in tests.
type MemoryStore struct {
	mu  sync.Mutex
	tok *Token
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, token string, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok = &Token{Value: token, UserID: userID}
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (Token, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tok == nil {
		return Token{}, false, nil
	}
	return *m.tok, true, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok = nil
	return nil
}
