package credential

import (
	"context"
	"sync"
)

// MemoryStore хранит токены в памяти процесса. Перезапуск сервиса их теряет.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryStore создаёт пустое хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

func (s *MemoryStore) Save(_ context.Context, sid, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[sid] = token
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sid string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[sid]
	return token, ok && token != "", nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, sid)
	return nil
}
