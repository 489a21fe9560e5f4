package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore хранит токены в redis с ограниченным временем жизни.
type RedisStore struct {
	db  redis.UniversalClient
	ttl time.Duration
}

// NewRedisStore создаёт хранилище поверх готового клиента redis.
func NewRedisStore(db redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{db: db, ttl: ttl}
}

func redisKey(sid string) string {
	return "session:" + sid + ":" + Key
}

// Save сохраняет токен сессии, перезаписывая предыдущий.
func (s *RedisStore) Save(ctx context.Context, sid, token string) error {
	const op = "credential.RedisStore.Save"
	if err := s.db.Set(ctx, redisKey(sid), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Load возвращает токен сессии. found=false, если токена нет.
func (s *RedisStore) Load(ctx context.Context, sid string) (string, bool, error) {
	const op = "credential.RedisStore.Load"
	token, err := s.db.Get(ctx, redisKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return token, token != "", nil
}

// Clear удаляет токен сессии. Отсутствие токена не ошибка.
func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	const op = "credential.RedisStore.Clear"
	if err := s.db.Del(ctx, redisKey(sid)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
