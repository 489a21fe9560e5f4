// Package pages отдаёт публичные страницы без форм.
package pages

import (
	"net/http"

	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

// Renderer отрисовывает страницы сайта.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, page web.Page)
	NotFound(w http.ResponseWriter, r *http.Request)
}

type Handler struct {
	render Renderer
}

func New(render Renderer) *Handler {
	return &Handler{render: render}
}

// Home GET /.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "home", web.Page{
		Data: web.HomeData{Benefits: web.HomeBenefits, Stats: web.HomeStats, Tiers: models.Tiers},
	})
}

// Parceria GET /parceria, уровни партнёрства.
func (h *Handler) Parceria(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "parceria", web.Page{Title: "Parceria", Data: models.Tiers})
}

// Fornecedores GET /fornecedores?categoria=.
// Неизвестная категория даёт пустой каталог, а не ошибку.
func (h *Handler) Fornecedores(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "fornecedores", web.Page{
		Title: "Fornecedores Parceiros",
		Data:  web.NewPartnersData(r.URL.Query().Get("categoria")),
	})
}

func (h *Handler) Politica(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "politica-de-privacidade", web.Page{Title: "Política de Privacidade"})
}

func (h *Handler) Termos(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "termos-de-uso", web.Page{Title: "Termos de Uso", Data: models.Tiers})
}

// Denied GET /acesso-negado, отвечает 403.
func (h *Handler) Denied(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusForbidden, "acesso-negado", web.Page{Title: "Acesso Negado"})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render.NotFound(w, r)
}
