// Package sessiontest собирает сессии поверх поддельного бэкенда для тестов обработчиков.
package sessiontest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cafe-maiolini/internal/apiclient"
	"github.com/magabrotheeeer/cafe-maiolini/internal/backend"
	"github.com/magabrotheeeer/cafe-maiolini/internal/backend/backendtest"
	"github.com/magabrotheeeer/cafe-maiolini/internal/credential"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
)

// Env поддельный бэкенд, клиент к нему и менеджер сессий.
type Env struct {
	Fake    *backendtest.Server
	API     *backend.Client
	Store   *credential.MemoryStore
	Manager *session.Manager
}

// NoopLogger логгер, который ничего не пишет.
func NoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func New(t testing.TB) *Env {
	t.Helper()
	fake := backendtest.New(t)
	log := NoopLogger()
	api := backend.New(apiclient.New(fake.BaseURL(), 2*time.Second, log, nil))
	store := credential.NewMemoryStore()
	return &Env{
		Fake:    fake,
		API:     api,
		Store:   store,
		Manager: session.NewManager(store, api, nil, log, session.Options{}),
	}
}

// Anonymous новая сессия без токена.
func (e *Env) Anonymous() *session.Session {
	return e.Manager.New(uuid.NewString())
}

// LoggedIn регистрирует пользователя в поддельном бэкенде и возвращает
// сессию, прошедшую проверку токена.
func (e *Env) LoggedIn(t testing.TB, u models.User) (*session.Session, models.User) {
	t.Helper()
	u.Ativo, u.Aprovado = true, true
	u = e.Fake.AddUser(u, "segredo")

	sid := uuid.NewString()
	require.NoError(t, e.Store.Save(context.Background(), sid, e.Fake.Token(u.ID)))
	s := e.Manager.Load(context.Background(), sid)
	require.Equal(t, session.StateAuthenticated, s.State())
	return s, u
}

// Cliente вошедший клиент уровня inicial.
func (e *Env) Cliente(t testing.TB) (*session.Session, models.User) {
	t.Helper()
	return e.LoggedIn(t, models.User{
		Email: "ana@cafe.test", Nome: "Ana Souza", TipoUsuario: models.RoleCliente,
		Cliente: &models.Cliente{NivelParceria: "inicial"},
	})
}

// Fornecedor вошедший поставщик.
func (e *Env) Fornecedor(t testing.TB) (*session.Session, models.User) {
	t.Helper()
	return e.LoggedIn(t, models.User{
		Email: "ovos@cafe.test", Nome: "Carlos", TipoUsuario: models.RoleFornecedor,
		Fornecedor: &models.Fornecedor{NomeEmpresa: "Velozes dos Ovos", Categoria: "Ovos"},
	})
}

// Admin вошедший администратор.
func (e *Env) Admin(t testing.TB) (*session.Session, models.User) {
	t.Helper()
	return e.LoggedIn(t, models.User{
		Email: "admin@cafe.test", Nome: "Marina Maiolini", TipoUsuario: models.RoleAdmin,
	})
}

// With кладёт сессию в контекст запроса.
func With(r *http.Request, s *session.Session) *http.Request {
	return r.WithContext(session.WithContext(r.Context(), s))
}
