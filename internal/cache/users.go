package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

// UserCache хранит результат GET /auth/me для браузерной сессии.
// Запись действительна только для того токена, с которым была получена.
type UserCache struct {
	cache *Cache
	ttl   time.Duration
}

type userEntry struct {
	TokenHash string      `json:"token_hash"`
	User      models.User `json:"user"`
}

// NewUserCache создаёт кэш пользователей с временем жизни записи ttl.
func NewUserCache(c *Cache, ttl time.Duration) *UserCache {
	return &UserCache{cache: c, ttl: ttl}
}

func userKey(sid string) string {
	return "user:" + sid
}

func tokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Get возвращает пользователя, если он был закэширован для этого же токена.
func (u *UserCache) Get(ctx context.Context, sid, token string) (*models.User, bool, error) {
	const op = "cache.UserCache.Get"
	var entry userEntry
	found, err := u.cache.Get(ctx, userKey(sid), &entry)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	if !found || entry.TokenHash != tokenHash(token) {
		return nil, false, nil
	}
	return &entry.User, true, nil
}

func (u *UserCache) Set(ctx context.Context, sid, token string, user *models.User) error {
	const op = "cache.UserCache.Set"
	if err := u.cache.Set(ctx, userKey(sid), userEntry{TokenHash: tokenHash(token), User: *user}, u.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (u *UserCache) Invalidate(ctx context.Context, sid string) error {
	const op = "cache.UserCache.Invalidate"
	if err := u.cache.Invalidate(ctx, userKey(sid)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
