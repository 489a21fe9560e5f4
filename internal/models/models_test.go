package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Home(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleCliente, "/dashboard"},
		{RoleFornecedor, "/fornecedor/dashboard"},
		{RoleAdmin, "/admin/dashboard"},
		{Role("outro"), "/"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Home())
			assert.Equal(t, tt.want != "/", tt.role.Valid())
		})
	}
}

func TestUser_DecodeMeResponse(t *testing.T) {
	body := `{
		"id": 7,
		"email": "ana@cafe.com",
		"nome": "Ana",
		"telefone": null,
		"tipo_usuario": "cliente",
		"ativo": true,
		"aprovado": true,
		"data_criacao": "2024-03-01T10:15:00.123456",
		"cliente": {"id": 3, "user_id": 7, "empresa": "Café da Ana", "nivel_parceria": "elite", "cashback_acumulado": 12.5}
	}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(body), &u))
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, RoleCliente, u.TipoUsuario)
	assert.Nil(t, u.Telefone)
	require.NotNil(t, u.Cliente)
	assert.Equal(t, "elite", u.Cliente.NivelParceria)
	assert.Equal(t, "Café da Ana", u.DisplayName())
}

func TestUser_DisplayName(t *testing.T) {
	var nilUser *User
	assert.Empty(t, nilUser.DisplayName())

	u := &User{Nome: "Bruno", Fornecedor: &Fornecedor{NomeEmpresa: "Leite Bom"}}
	assert.Equal(t, "Leite Bom", u.DisplayName())

	u = &User{Nome: "Carla"}
	assert.Equal(t, "Carla", u.DisplayName())
}

func TestRegistration_ConfirmPasswordNotSent(t *testing.T) {
	data, err := json.Marshal(Registration{Email: "a@b.c", Password: "123456", ConfirmPassword: "123456"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "confirm")
}

func TestTierByNivel(t *testing.T) {
	tier, ok := TierByNivel("elite")
	require.True(t, ok)
	assert.InDelta(t, 0.02, tier.Cashback, 1e-9)

	_, ok = TierByNivel("ouro")
	assert.False(t, ok)
}
