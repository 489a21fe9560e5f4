// Package session состояние аутентификации браузерной сессии.
//
// Session живёт один HTTP-запрос и является единственным, кто меняет токен
// и пользователя своей браузерной сессии. Manager восстанавливает Session
// из хранилища токенов и проверяет токен через GET /auth/me.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

// Result итог операции сессии. Операции не возвращают ошибок: неудача
// описывается Success=false и сообщением для пользователя.
type Result struct {
	Success    bool
	Message    string
	User       *models.User
	DebugToken string // токен сброса пароля, бэкенд отдаёт его только в разработке
	Email      string // email владельца токена сброса пароля
}

// Session сессия одного браузера в рамках запроса.
// Мьютекс не удерживается во время сетевых вызовов.
type Session struct {
	sid string
	mgr *Manager

	mu    sync.Mutex
	state State
	token string
	user  *models.User
}

// SID идентификатор браузерной сессии.
func (s *Session) SID() string {
	return s.sid
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User возвращает подтверждённого пользователя или nil.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Snapshot возвращает состояние и пользователя согласованно.
func (s *Session) Snapshot() (State, *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.user
}

// Token реализует apiclient.Credentials.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Rejected реализует apiclient.Credentials: бэкенд ответил 401 на запрос с
// токеном сессии. Токен удаляется, сессия становится анонимной.
func (s *Session) Rejected(ctx context.Context) {
	const op = "session.Rejected"

	s.mu.Lock()
	token := s.token
	s.token = ""
	s.user = nil
	s.state = StateAnonymous
	s.mu.Unlock()

	if token == "" {
		return
	}
	s.mgr.log.Info("credential rejected by backend, session logged out", sl.Op(op), slog.String("sid", shortSID(s.sid)))
	s.mgr.forget(ctx, s.sid, token)
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

func (s *Session) IsClient() bool {
	return s.hasRole(models.RoleCliente)
}

func (s *Session) IsSupplier() bool {
	return s.hasRole(models.RoleFornecedor)
}

func (s *Session) IsAdmin() bool {
	return s.hasRole(models.RoleAdmin)
}

func (s *Session) hasRole(role models.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated && s.user != nil && s.user.TipoUsuario == role
}

func (s *Session) authenticate(token string, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	s.state = StateAuthenticated
}

func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.state = StateAnonymous
}

// shortSID укорачивает идентификатор сессии для логов.
func shortSID(sid string) string {
	if len(sid) > 8 {
		return sid[:8]
	}
	return sid
}

type ctxKey struct{}

// WithContext кладёт сессию в контекст запроса.
func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext достаёт сессию из контекста. nil, если её нет.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
