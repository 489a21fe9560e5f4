// Package logout реализует выход из сессии.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/cafe-maiolini/internal/http/middlewarectx"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP удаляет токен сессии и возвращает на главную. Выход не может завершиться неудачей.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}
	s.Logout(r.Context())
	h.log.Info("user logged out",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
