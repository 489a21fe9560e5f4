package login

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session/sessiontest"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	rd, err := web.New(sessiontest.NoopLogger())
	require.NoError(t, err)
	return New(sessiontest.NoopLogger(), rd)
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	env := sessiontest.New(t)
	env.Fake.AddUser(models.User{
		Email: "ana@cafe.test", Nome: "Ana", TipoUsuario: models.RoleCliente, Ativo: true, Aprovado: true,
	}, "segredo")
	env.Fake.AddUser(models.User{
		Email: "adm@cafe.test", Nome: "Marina", TipoUsuario: models.RoleAdmin, Ativo: true, Aprovado: true,
	}, "segredo")
	env.Fake.AddUser(models.User{
		Email: "novo@cafe.test", Nome: "Novo", TipoUsuario: models.RoleFornecedor, Ativo: true,
	}, "segredo")

	h := newHandler(t)

	tests := []struct {
		name         string
		form         url.Values
		wantStatus   int
		wantLocation string
		wantBody     string
		wantAuth     bool
	}{
		{
			name:         "cliente goes to role home",
			form:         url.Values{"email": {"ana@cafe.test"}, "password": {"segredo"}},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/dashboard",
			wantAuth:     true,
		},
		{
			name:         "safe from wins over role home",
			form:         url.Values{"email": {"adm@cafe.test"}, "password": {"segredo"}, "from": {"/admin/usuarios?status=pendente"}},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/admin/usuarios?status=pendente",
			wantAuth:     true,
		},
		{
			name:         "external from is ignored",
			form:         url.Values{"email": {"adm@cafe.test"}, "password": {"segredo"}, "from": {"//evil.example/x"}},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/admin/dashboard",
			wantAuth:     true,
		},
		{
			name:       "wrong password",
			form:       url.Values{"email": {"ana@cafe.test"}, "password": {"errada"}},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Credenciais inválidas",
		},
		{
			name:       "pending supplier",
			form:       url.Values{"email": {"novo@cafe.test"}, "password": {"segredo"}},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Conta aguardando aprovação",
		},
		{
			name:       "missing password",
			form:       url.Values{"email": {"ana@cafe.test"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "Senha é obrigatório",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := env.Anonymous()
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, sessiontest.With(postForm("/login", tt.form), s))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
				assert.Contains(t, rec.Body.String(), `value="`+tt.form.Get("email")+`"`)
			}
			assert.Equal(t, tt.wantAuth, s.IsAuthenticated())

			_, stored, err := env.Store.Load(context.Background(), s.SID())
			require.NoError(t, err)
			assert.Equal(t, tt.wantAuth, stored)
		})
	}
}

func TestLoginHandler_BackendDown(t *testing.T) {
	env := sessiontest.New(t)
	env.Fake.Close()
	h := newHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, sessiontest.With(postForm("/login", url.Values{"email": {"a@b.c"}, "password": {"x"}}), env.Anonymous()))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), session.MsgConnection)
}

func TestLoginHandler_Form(t *testing.T) {
	env := sessiontest.New(t)
	h := newHandler(t)

	t.Run("anonymous sees the form with from", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/login?from=%2Fperfil", nil)

		h.Form(rec, sessiontest.With(req, env.Anonymous()))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `name="from" value="/perfil"`)
	})

	t.Run("unsafe from is dropped", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/login?from=https%3A%2F%2Fevil.example", nil)

		h.Form(rec, sessiontest.With(req, env.Anonymous()))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), `name="from"`)
	})

	t.Run("authenticated user is redirected", func(t *testing.T) {
		s, _ := env.Fornecedor(t)
		rec := httptest.NewRecorder()

		h.Form(rec, sessiontest.With(httptest.NewRequest(http.MethodGet, "/login", nil), s))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/fornecedor/dashboard", rec.Header().Get("Location"))
	})
}

func TestLoginHandler_Limited(t *testing.T) {
	env := sessiontest.New(t)
	h := newHandler(t)
	rec := httptest.NewRecorder()

	h.Limited(rec, sessiontest.With(postForm("/login", url.Values{"email": {"ana@cafe.test"}}), env.Anonymous()))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgTooManyAttempts)
}

func TestTarget(t *testing.T) {
	assert.Equal(t, "/perfil", Target("/perfil", models.RoleCliente))
	assert.Equal(t, "/dashboard", Target("", models.RoleCliente))
	assert.Equal(t, "/admin/dashboard", Target("/login", models.RoleAdmin))
	assert.Equal(t, "/fornecedor/dashboard", Target("http://evil.example", models.RoleFornecedor))
}
