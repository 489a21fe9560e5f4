package usuarios

import (
	"context"
	"net/http"

	"github.com/magabrotheeeer/cafe-maiolini/internal/apiclient"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

// Service вызовы администрирования пользователей.
type Service interface {
	Users(ctx context.Context, creds apiclient.Credentials, f models.UserFilter) (*models.UserList, error)
	ApproveSupplier(ctx context.Context, creds apiclient.Credentials, userID int64) (string, error)
	RejectSupplier(ctx context.Context, creds apiclient.Credentials, userID int64) (string, error)
	ToggleUser(ctx context.Context, creds apiclient.Credentials, userID int64) (string, error)
}

type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, page web.Page)
}
