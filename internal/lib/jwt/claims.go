// Package jwt разбирает bearer-токены бэкенда без проверки подписи.
//
// Токен для фронтенда непрозрачен: подпись проверяет только бэкенд.
// Разбор нужен лишь для того, чтобы не ходить в /auth/me с заведомо
// истёкшим токеном.
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает поля, которые бэкенд кладёт в токен.
type Claims struct {
	UserID               int64  `json:"user_id"`      // Идентификатор пользователя
	TipoUsuario          string `json:"tipo_usuario"` // Роль: cliente, fornecedor или admin
	jwt.RegisteredClaims        // ExpiresAt и прочие стандартные поля
}
