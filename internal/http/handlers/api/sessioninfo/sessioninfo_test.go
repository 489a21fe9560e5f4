package sessioninfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cafe-maiolini/internal/http/response"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session/sessiontest"
)

func get(t *testing.T, s *session.Session) (*httptest.ResponseRecorder, Info) {
	t.Helper()
	rec := httptest.NewRecorder()
	New(sessiontest.NoopLogger()).ServeHTTP(rec, sessiontest.With(httptest.NewRequest(http.MethodGet, "/api/session", nil), s))

	var body struct {
		response.Response
		Data Info `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body.Data
}

func TestSessionInfo(t *testing.T) {
	env := sessiontest.New(t)

	t.Run("anonymous", func(t *testing.T) {
		rec, info := get(t, env.Anonymous())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		assert.Equal(t, session.StateAnonymous.String(), info.State)
		assert.False(t, info.IsAuthenticated)
		assert.Nil(t, info.User)
	})

	t.Run("supplier", func(t *testing.T) {
		s, u := env.Fornecedor(t)
		_, info := get(t, s)

		assert.Equal(t, session.StateAuthenticated.String(), info.State)
		assert.True(t, info.IsAuthenticated)
		assert.True(t, info.IsSupplier)
		assert.False(t, info.IsAdmin)
		require.NotNil(t, info.User)
		assert.Equal(t, u.Email, info.User.Email)
	})
}

func TestSessionInfo_Validating(t *testing.T) {
	env := sessiontest.New(t)
	env.Fake.MeDelay = 200 * time.Millisecond
	u := env.Fake.AddUser(models.User{Email: "lenta@cafe.test", TipoUsuario: models.RoleCliente, Ativo: true, Aprovado: true}, "x")
	require.NoError(t, env.Store.Save(t.Context(), "sid", env.Fake.Token(u.ID)))
	mgr := session.NewManager(env.Store, env.API, nil, sessiontest.NoopLogger(),
		session.Options{ValidateWait: 20 * time.Millisecond, ValidateTimeout: 5 * time.Second})

	_, info := get(t, mgr.Load(t.Context(), "sid"))

	assert.Equal(t, session.StateValidating.String(), info.State)
	assert.True(t, info.Loading)
	assert.False(t, info.IsAuthenticated)
}

func TestSessionInfo_WithoutSession(t *testing.T) {
	rec := httptest.NewRecorder()
	New(sessiontest.NoopLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
