package pages

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cafe-maiolini/internal/session/sessiontest"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

func TestPages(t *testing.T) {
	rd, err := web.New(sessiontest.NoopLogger())
	require.NoError(t, err)
	h := New(rd)
	env := sessiontest.New(t)

	tests := []struct {
		name       string
		target     string
		handler    http.HandlerFunc
		wantStatus int
		contains   []string
		excludes   []string
	}{
		{name: "home", target: "/", handler: h.Home, wantStatus: http.StatusOK, contains: []string{"Cashback Exclusivo", "Parceiro Elite"}},
		{name: "parceria", target: "/parceria", handler: h.Parceria, wantStatus: http.StatusOK, contains: []string{"Parceiro Inicial"}},
		{
			name: "fornecedores all", target: "/fornecedores", handler: h.Fornecedores, wantStatus: http.StatusOK,
			contains: []string{"Velozes dos Ovos", "Denise Salgados", "Pães Artesanais Emiborah"},
		},
		{
			name: "fornecedores filtered", target: "/fornecedores?categoria=Salgados", handler: h.Fornecedores, wantStatus: http.StatusOK,
			contains: []string{"Denise Salgados"}, excludes: []string{"@velozes013"},
		},
		{name: "politica", target: "/politica-de-privacidade", handler: h.Politica, wantStatus: http.StatusOK},
		{name: "termos", target: "/termos-de-uso", handler: h.Termos, wantStatus: http.StatusOK, contains: []string{"Parceiro Elite"}},
		{name: "acesso negado", target: "/acesso-negado", handler: h.Denied, wantStatus: http.StatusForbidden},
		{name: "not found", target: "/nada", handler: h.NotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sessiontest.With(httptest.NewRequest(http.MethodGet, tt.target, nil), env.Anonymous())
			rec := httptest.NewRecorder()

			tt.handler(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, rec.Body.String(), s)
			}
		})
	}
}
