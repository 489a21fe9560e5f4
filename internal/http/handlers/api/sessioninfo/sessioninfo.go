// Package sessioninfo отвечает на GET /api/session состоянием сессии браузера.
package sessioninfo

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cafe-maiolini/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/response"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

// Info состояние сессии, как его видит страница.
type Info struct {
	State           string       `json:"state"`
	Loading         bool         `json:"loading"`
	IsAuthenticated bool         `json:"is_authenticated"`
	IsClient        bool         `json:"is_client"`
	IsSupplier      bool         `json:"is_supplier"`
	IsAdmin         bool         `json:"is_admin"`
	User            *models.User `json:"user"`
}

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP отдаёт состояние сессии браузера.
//
// @Summary Сессия браузера
// @Description Состояние проверки токена, флаги ролей и пользователь. Сессию определяет cookie.
// @Tags API
// @Produce  json
// @Success 200 {object} response.Response{data=Info} "Состояние сессии"
// @Failure 500 {string} string "Сессия не загружена"
// @Router /api/session [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}

	state, user := s.Snapshot()
	info := Info{
		State:   state.String(),
		Loading: state.Pending(),
	}
	if s.IsAuthenticated() && user != nil {
		info.IsAuthenticated = true
		info.IsClient = s.IsClient()
		info.IsSupplier = s.IsSupplier()
		info.IsAdmin = s.IsAdmin()
		info.User = user
	}

	w.Header().Set("Cache-Control", "no-store")
	render.JSON(w, r, response.StatusOKWithData(info))
}
