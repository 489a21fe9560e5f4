package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestInspector_Inspect(t *testing.T) {
	inspector := NewInspector(0)
	exp := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Second)

	token := signToken(t, Claims{
		UserID:      42,
		TipoUsuario: "fornecedor",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	claims, err := inspector.Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "fornecedor", claims.TipoUsuario)
	assert.True(t, exp.Equal(claims.ExpiresAt.Time))
}

func TestInspector_Expired(t *testing.T) {
	inspector := NewInspector(30 * time.Second)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name: "valid token",
			token: signToken(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}}),
			want: false,
		},
		{
			name: "expired token",
			token: signToken(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			}}),
			want: true,
		},
		{
			name: "expired within leeway",
			token: signToken(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-10 * time.Second)),
			}}),
			want: false,
		},
		{
			name:  "token without exp",
			token: signToken(t, Claims{UserID: 1}),
			want:  false,
		},
		{
			name:  "opaque token",
			token: "opaque-session-token",
			want:  false,
		},
		{
			name:  "empty token",
			token: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inspector.Expired(tt.token))
		})
	}
}

func TestInspector_InspectOpaqueToken(t *testing.T) {
	claims, err := NewInspector(0).Inspect("not.a.jwt")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
