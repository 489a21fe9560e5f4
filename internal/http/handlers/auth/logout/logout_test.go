package logout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session/sessiontest"
)

func TestLogoutHandler(t *testing.T) {
	env := sessiontest.New(t)
	h := New(sessiontest.NoopLogger())

	t.Run("authenticated session is cleared", func(t *testing.T) {
		s, _ := env.Cliente(t)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, sessiontest.With(httptest.NewRequest(http.MethodPost, "/logout", nil), s))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Equal(t, session.StateAnonymous, s.State())
		assert.Nil(t, s.User())

		_, found, err := env.Store.Load(context.Background(), s.SID())
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("backend down does not block logout", func(t *testing.T) {
		s, _ := env.Admin(t)
		env.Fake.FailWith.Store(http.StatusInternalServerError)
		t.Cleanup(func() { env.Fake.FailWith.Store(0) })
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, sessiontest.With(httptest.NewRequest(http.MethodPost, "/logout", nil), s))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.False(t, s.IsAuthenticated())
	})

	t.Run("anonymous logout is harmless", func(t *testing.T) {
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, sessiontest.With(httptest.NewRequest(http.MethodPost, "/logout", nil), env.Anonymous()))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})
}
