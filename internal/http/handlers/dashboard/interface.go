package dashboard

import (
	"context"
	"net/http"

	"github.com/magabrotheeeer/cafe-maiolini/internal/apiclient"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

// Service запросы данных дашбордов к бэкенду.
type Service interface {
	ClienteDashboard(ctx context.Context, creds apiclient.Credentials) (*models.ClienteDashboard, error)
	FornecedorDashboard(ctx context.Context, creds apiclient.Credentials) (*models.FornecedorDashboard, error)
	AdminDashboard(ctx context.Context, creds apiclient.Credentials) (*models.AdminDashboard, error)
}

// Renderer отрисовывает дашборды и страницу ошибки загрузки.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, page web.Page)
	Failed(w http.ResponseWriter, r *http.Request, status int, msg, retry string)
}
