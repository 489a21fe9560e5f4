package profile

import (
	"net/http"

	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

// Renderer отрисовывает страницу профиля.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, page web.Page)
}
