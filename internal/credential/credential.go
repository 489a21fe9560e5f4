// Package credential хранит bearer-токен бэкенда для каждой браузерной сессии.
//
// У сессии ровно один токен под фиксированным ключом token. Токен непрозрачен
// и хранилищем не проверяется.
package credential

import (
	"context"
)

// Key имя, под которым токен хранится в сессии.
const Key = "token"

// Store хранилище токенов, sid идентификатор браузерной сессии.
type Store interface {
	Save(ctx context.Context, sid, token string) error
	Load(ctx context.Context, sid string) (token string, found bool, err error)
	Clear(ctx context.Context, sid string) error
}
