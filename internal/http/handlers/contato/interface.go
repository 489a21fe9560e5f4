package contato

import (
	"context"
	"net/http"

	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

// Publisher принимает заявки, сейчас это RabbitMQ или лог.
type Publisher interface {
	PublishLead(ctx context.Context, lead models.Lead) error
}

type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, page web.Page)
}
