package credential

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
)

// FallbackStore пишет в основное хранилище и дублирует токены в память.
// Если основное хранилище недоступно, операция выполняется только в памяти,
// поэтому методы FallbackStore никогда не возвращают ошибку.
type FallbackStore struct {
	primary  Store
	fallback *MemoryStore
	log      *slog.Logger
}

// NewFallbackStore создаёт хранилище с резервной копией в памяти.
func NewFallbackStore(primary Store, log *slog.Logger) *FallbackStore {
	return &FallbackStore{
		primary:  primary,
		fallback: NewMemoryStore(),
		log:      log,
	}
}

func (s *FallbackStore) Save(ctx context.Context, sid, token string) error {
	const op = "credential.FallbackStore.Save"
	_ = s.fallback.Save(ctx, sid, token)
	if err := s.primary.Save(ctx, sid, token); err != nil {
		s.log.Warn("primary store unavailable, token kept in memory", sl.Op(op), sl.Err(err))
	}
	return nil
}

func (s *FallbackStore) Load(ctx context.Context, sid string) (string, bool, error) {
	const op = "credential.FallbackStore.Load"
	token, found, err := s.primary.Load(ctx, sid)
	if err == nil {
		if !found {
			// основное хранилище авторитетно, пока доступно
			_ = s.fallback.Clear(ctx, sid)
		}
		return token, found, nil
	}
	s.log.Warn("primary store unavailable, reading token from memory", sl.Op(op), sl.Err(err))
	return s.fallback.Load(ctx, sid)
}

func (s *FallbackStore) Clear(ctx context.Context, sid string) error {
	const op = "credential.FallbackStore.Clear"
	_ = s.fallback.Clear(ctx, sid)
	if err := s.primary.Clear(ctx, sid); err != nil {
		s.log.Warn("primary store unavailable, token cleared in memory only", sl.Op(op), sl.Err(err))
	}
	return nil
}
