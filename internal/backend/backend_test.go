package backend

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cafe-maiolini/internal/apiclient"
	"github.com/magabrotheeeer/cafe-maiolini/internal/backend/backendtest"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

func setup(t *testing.T) (*Client, *backendtest.Server) {
	t.Helper()
	fake := backendtest.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(apiclient.New(fake.BaseURL(), 2*time.Second, log, nil)), fake
}

func TestClient_LoginAndMe(t *testing.T) {
	client, fake := setup(t)
	ctx := context.Background()
	u := fake.AddUser(models.User{Email: "ana@cafe.test", Nome: "Ana", TipoUsuario: models.RoleCliente, Ativo: true, Aprovado: true}, "segredo")

	resp, err := client.Login(ctx, "ana@cafe.test", "segredo")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, u.ID, resp.User.ID)

	me, err := client.Me(ctx, apiclient.StaticToken(resp.Token))
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Nome)
}

func TestClient_LoginWrongPassword(t *testing.T) {
	client, fake := setup(t)
	fake.AddUser(models.User{Email: "ana@cafe.test", TipoUsuario: models.RoleCliente, Ativo: true, Aprovado: true}, "segredo")

	_, err := client.Login(context.Background(), "ana@cafe.test", "errada")
	require.Error(t, err)
	assert.Equal(t, apiclient.KindAuth, apiclient.KindOf(err))
	assert.Equal(t, "Credenciais inválidas", apiclient.Message(err))
}

func TestClient_RegisterSupplierPending(t *testing.T) {
	client, _ := setup(t)

	resp, err := client.Register(context.Background(), models.Registration{
		Email: "f@cafe.test", Password: "123456", Nome: "Forn", TipoUsuario: models.RoleFornecedor,
		NomeEmpresa: "Leite Bom", Categoria: "Laticínios",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.False(t, resp.User.Aprovado)
	assert.Contains(t, resp.Message, "Aguarde aprovação")
}

func TestClient_PasswordReset(t *testing.T) {
	client, fake := setup(t)
	ctx := context.Background()
	fake.AddUser(models.User{Email: "ana@cafe.test", TipoUsuario: models.RoleCliente, Ativo: true, Aprovado: true}, "antiga")

	forgot, err := client.ForgotPassword(ctx, "ana@cafe.test")
	require.NoError(t, err)
	require.NotEmpty(t, forgot.DebugToken)

	valid, err := client.ValidateResetToken(ctx, forgot.DebugToken)
	require.NoError(t, err)
	assert.True(t, valid.Valid)
	assert.Equal(t, "ana@cafe.test", valid.Email)

	invalid, err := client.ValidateResetToken(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, invalid.Valid)

	msg, err := client.ResetPassword(ctx, forgot.DebugToken, "novasenha")
	require.NoError(t, err)
	assert.Equal(t, "Senha alterada com sucesso", msg)

	_, err = client.Login(ctx, "ana@cafe.test", "novasenha")
	require.NoError(t, err)
}

func TestClient_AdminOperations(t *testing.T) {
	client, fake := setup(t)
	ctx := context.Background()
	admin := fake.AddUser(models.User{Nome: "Admin", TipoUsuario: models.RoleAdmin, Ativo: true, Aprovado: true}, "x")
	forn := fake.AddUser(models.User{Nome: "Forn", TipoUsuario: models.RoleFornecedor, Ativo: true}, "x")
	creds := apiclient.StaticToken(fake.Token(admin.ID))

	list, err := client.Users(ctx, creds, models.UserFilter{Status: "pendente", Page: 1})
	require.NoError(t, err)
	require.Len(t, list.Usuarios, 1)
	assert.Equal(t, forn.ID, list.Usuarios[0].ID)

	msg, err := client.ApproveSupplier(ctx, creds, forn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fornecedor aprovado com sucesso", msg)

	msg, err = client.ToggleUser(ctx, creds, forn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Usuário desativado com sucesso", msg)

	_, err = client.ToggleUser(ctx, creds, admin.ID)
	require.Error(t, err)
	assert.Equal(t, apiclient.KindValidation, apiclient.KindOf(err))

	dash, err := client.AdminDashboard(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Estatisticas.TotalFornecedores)

	msg, err = client.RejectSupplier(ctx, creds, forn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fornecedor rejeitado e removido", msg)
}

func TestClient_RoleDashboards(t *testing.T) {
	client, fake := setup(t)
	ctx := context.Background()
	cli := fake.AddUser(models.User{TipoUsuario: models.RoleCliente, Ativo: true, Aprovado: true, Cliente: &models.Cliente{NivelParceria: "avancado"}}, "x")

	dash, err := client.ClienteDashboard(ctx, apiclient.StaticToken(fake.Token(cli.ID)))
	require.NoError(t, err)
	assert.Equal(t, "avancado", dash.Cliente.NivelParceria)
	assert.Equal(t, 3, dash.EstatisticasMes.NumeroPedidos)

	_, err = client.FornecedorDashboard(ctx, apiclient.StaticToken(fake.Token(cli.ID)))
	require.Error(t, err)
	assert.Equal(t, "Acesso negado", apiclient.Message(err))
}

func TestClient_Health(t *testing.T) {
	client, fake := setup(t)
	require.NoError(t, client.Health(context.Background()))

	fake.Close()
	err := client.Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, apiclient.KindNetwork, apiclient.KindOf(err))
}
