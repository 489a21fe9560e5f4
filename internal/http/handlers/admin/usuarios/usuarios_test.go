package usuarios

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cafe-maiolini/internal/apiclient"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session/sessiontest"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

// MockService реализует интерфейс usuarios.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Users(ctx context.Context, creds apiclient.Credentials, f models.UserFilter) (*models.UserList, error) {
	args := m.Called(ctx, creds, f)
	l, _ := args.Get(0).(*models.UserList)
	return l, args.Error(1)
}

func (m *MockService) ApproveSupplier(ctx context.Context, creds apiclient.Credentials, userID int64) (string, error) {
	args := m.Called(ctx, creds, userID)
	return args.String(0), args.Error(1)
}

func (m *MockService) RejectSupplier(ctx context.Context, creds apiclient.Credentials, userID int64) (string, error) {
	args := m.Called(ctx, creds, userID)
	return args.String(0), args.Error(1)
}

func (m *MockService) ToggleUser(ctx context.Context, creds apiclient.Credentials, userID int64) (string, error) {
	args := m.Called(ctx, creds, userID)
	return args.String(0), args.Error(1)
}

func newRouter(t *testing.T, h *Handler, s *session.Session) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, sessiontest.With(req, s))
		})
	})
	r.Get("/admin/usuarios", h.List)
	r.Post("/admin/usuarios/{id}/aprovar", h.Approve)
	r.Post("/admin/usuarios/{id}/rejeitar", h.Reject)
	r.Post("/admin/usuarios/{id}/status", h.Toggle)
	return r
}

func newRenderer(t *testing.T) *web.Renderer {
	t.Helper()
	rd, err := web.New(sessiontest.NoopLogger())
	require.NoError(t, err)
	return rd
}

func postBack(target, back string) *http.Request {
	form := url.Values{"back": {back}}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestFilterFrom(t *testing.T) {
	tests := []struct {
		query string
		want  models.UserFilter
	}{
		{"", models.UserFilter{Page: 1, PerPage: PerPage}},
		{"page=3&status=pendente&tipo_usuario=fornecedor&busca=+ovos+", models.UserFilter{Page: 3, PerPage: PerPage, Status: "pendente", TipoUsuario: "fornecedor", Busca: "ovos"}},
		{"page=-1&status=todos&tipo_usuario=root", models.UserFilter{Page: 1, PerPage: PerPage}},
	}
	for _, tt := range tests {
		q, err := url.ParseQuery(tt.query)
		require.NoError(t, err)
		assert.Equal(t, tt.want, FilterFrom(q), tt.query)
	}
}

func TestSafeBack(t *testing.T) {
	assert.Equal(t, "/admin/usuarios?status=pendente", SafeBack("/admin/usuarios?status=pendente"))
	assert.Equal(t, ListPath, SafeBack(""))
	assert.Equal(t, ListPath, SafeBack("/perfil"))
	assert.Equal(t, ListPath, SafeBack("//evil.example/admin/usuarios"))
	assert.Equal(t, ListPath, SafeBack("https://evil.example/admin/usuarios"))
}

func TestBackURL(t *testing.T) {
	q, _ := url.ParseQuery("status=pendente&ok=feito&erro=x")
	assert.Equal(t, "/admin/usuarios?status=pendente", BackURL(q))
	assert.Equal(t, ListPath, BackURL(url.Values{}))
}

func TestList(t *testing.T) {
	env := sessiontest.New(t)
	s, admin := env.Admin(t)
	rd := newRenderer(t)

	t.Run("renders list with flash", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Users", mock.Anything, s, models.UserFilter{Page: 1, PerPage: PerPage, Status: "pendente"}).
			Return(&models.UserList{
				Usuarios: []models.User{admin, {ID: 42, Nome: "Ovos", TipoUsuario: models.RoleFornecedor, Ativo: true}},
				Total:    2, Pages: 1, CurrentPage: 1,
			}, nil).Once()
		rec := httptest.NewRecorder()

		newRouter(t, New(sessiontest.NoopLogger(), svc, rd), s).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/usuarios?status=pendente&ok=Fornecedor+aprovado+com+sucesso", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Fornecedor aprovado com sucesso")
		assert.Contains(t, body, "/admin/usuarios/42/aprovar")
		assert.Contains(t, body, `name="back" value="/admin/usuarios?status=pendente"`)
		svc.AssertExpectations(t)
	})

	t.Run("backend failure shows empty list with alert", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Users", mock.Anything, s, mock.Anything).
			Return(nil, &apiclient.Error{Message: apiclient.NetworkMessage, Kind: apiclient.KindNetwork}).Once()
		rec := httptest.NewRecorder()

		newRouter(t, New(sessiontest.NoopLogger(), svc, rd), s).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/usuarios", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), session.MsgConnection)
		assert.Contains(t, rec.Body.String(), "Nenhum usuário encontrado")
	})
}

func TestActions(t *testing.T) {
	env := sessiontest.New(t)
	s, _ := env.Admin(t)
	rd := newRenderer(t)

	tests := []struct {
		name         string
		target       string
		back         string
		setup        func(*MockService)
		wantLocation string
	}{
		{
			name:   "approve",
			target: "/admin/usuarios/42/aprovar",
			back:   "/admin/usuarios?status=pendente",
			setup: func(m *MockService) {
				m.On("ApproveSupplier", mock.Anything, s, int64(42)).Return("Fornecedor aprovado com sucesso", nil).Once()
			},
			wantLocation: "/admin/usuarios?ok=Fornecedor+aprovado+com+sucesso&status=pendente",
		},
		{
			name:   "reject",
			target: "/admin/usuarios/42/rejeitar",
			back:   "/admin/usuarios",
			setup: func(m *MockService) {
				m.On("RejectSupplier", mock.Anything, s, int64(42)).Return("Fornecedor rejeitado e removido", nil).Once()
			},
			wantLocation: "/admin/usuarios?ok=Fornecedor+rejeitado+e+removido",
		},
		{
			name:   "toggle error goes back with message",
			target: "/admin/usuarios/7/status",
			back:   "/admin/usuarios?page=2&ok=velho",
			setup: func(m *MockService) {
				m.On("ToggleUser", mock.Anything, s, int64(7)).
					Return("", &apiclient.Error{StatusCode: 400, Message: "Não é possível desativar sua própria conta", Kind: apiclient.KindValidation}).Once()
			},
			wantLocation: "/admin/usuarios?erro=N%C3%A3o+%C3%A9+poss%C3%ADvel+desativar+sua+pr%C3%B3pria+conta&page=2",
		},
		{
			name:         "foreign back is replaced",
			target:       "/admin/usuarios/abc/status",
			back:         "https://evil.example",
			setup:        func(*MockService) {},
			wantLocation: "/admin/usuarios?erro=Usu%C3%A1rio+inv%C3%A1lido",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setup(svc)
			rec := httptest.NewRecorder()

			newRouter(t, New(sessiontest.NoopLogger(), svc, rd), s).ServeHTTP(rec, postBack(tt.target, tt.back))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			svc.AssertExpectations(t)
		})
	}
}

func TestActions_AgainstFakeBackend(t *testing.T) {
	env := sessiontest.New(t)
	s, _ := env.Admin(t)
	pending := env.Fake.AddUser(models.User{Email: "p@cafe.test", Nome: "P", TipoUsuario: models.RoleFornecedor, Ativo: true}, "x")
	router := newRouter(t, New(sessiontest.NoopLogger(), env.API, newRenderer(t)), s)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postBack("/admin/usuarios/"+strconv.FormatInt(pending.ID, 10)+"/aprovar", "/admin/usuarios?status=pendente"))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/usuarios?ok=Fornecedor+aprovado+com+sucesso&status=pendente", rec.Header().Get("Location"))

	u, ok := env.Fake.User(pending.ID)
	require.True(t, ok)
	assert.True(t, u.Aprovado)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/usuarios?status=pendente", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nenhum usuário encontrado")
}

func TestList_RevokedToken(t *testing.T) {
	env := sessiontest.New(t)
	s, _ := env.Admin(t)
	env.Fake.Revoke(s.Token())
	router := newRouter(t, New(sessiontest.NoopLogger(), env.API, newRenderer(t)), s)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/usuarios", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?from=%2Fadmin%2Fusuarios", rec.Header().Get("Location"))
	assert.Equal(t, session.StateAnonymous, s.State())
}
