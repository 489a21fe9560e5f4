// Package health отвечает на GET /api/health: сам сервис и доступность бэкенда.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cafe-maiolini/internal/http/response"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
)

// Значения поля backend.
const (
	BackendOK          = "ok"
	BackendUnavailable = "unavailable"
)

// BackendChecker проверяет бэкенд через его /health.
type BackendChecker interface {
	Health(ctx context.Context) error
}

// Status данные ответа.
type Status struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

type Handler struct {
	log     *slog.Logger
	backend BackendChecker
	timeout time.Duration
}

func New(log *slog.Logger, backend BackendChecker, timeout time.Duration) *Handler {
	return &Handler{log: log, backend: backend, timeout: timeout}
}

// ServeHTTP отвечает 200, когда бэкенд доступен, иначе 503 с тем же телом.
//
// @Summary Состояние сервиса
// @Description Проверяет сам сайт и доступность /health бэкенда.
// @Tags API
// @Produce  json
// @Success 200 {object} response.Response{data=Status} "Сайт и бэкенд доступны"
// @Failure 503 {object} response.Response{data=Status} "Бэкенд недоступен"
// @Router /api/health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.health"

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	st := Status{Status: "ok", Backend: BackendOK}
	if err := h.backend.Health(ctx); err != nil {
		h.log.Warn("backend health check failed",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		st.Backend = BackendUnavailable
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, response.StatusOKWithData(st))
}
