// Package dashboard реализует дашборды клиента, поставщика и администратора.
//
// Данные запрашиваются у бэкенда с токеном сессии. Если бэкенд отверг токен,
// сессия уже сброшена клиентом API, и браузер отправляется на вход.
package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/cafe-maiolini/internal/apiclient"
	"github.com/magabrotheeeer/cafe-maiolini/internal/guard"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

type Handler struct {
	log    *slog.Logger
	svc    Service
	render Renderer
}

func New(log *slog.Logger, svc Service, render Renderer) *Handler {
	return &Handler{log: log, svc: svc, render: render}
}

// Cliente GET /dashboard.
func (h *Handler) Cliente(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.Cliente"

	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}
	d, err := h.svc.ClienteDashboard(r.Context(), s)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	data := web.ClienteData{Dashboard: d}
	if next, ok := web.NextTier(d.Cliente.NivelParceria); ok {
		data.Next = &next
	}
	h.render.Render(w, r, http.StatusOK, "dashboard", web.Page{Title: "Meu Painel", Data: data})
}

// Fornecedor GET /fornecedor/dashboard.
func (h *Handler) Fornecedor(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.Fornecedor"

	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}
	d, err := h.svc.FornecedorDashboard(r.Context(), s)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	h.render.Render(w, r, http.StatusOK, "fornecedor-dashboard", web.Page{Title: "Painel do Fornecedor", Data: d})
}

// Admin GET /admin/dashboard.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.Admin"

	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}
	d, err := h.svc.AdminDashboard(r.Context(), s)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	h.render.Render(w, r, http.StatusOK, "admin-dashboard", web.Page{Title: "Painel Administrativo", Data: d})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	kind := apiclient.KindOf(err)
	if kind == apiclient.KindAuth {
		log.Info("backend rejected session, redirecting to login", sl.Err(err))
		http.Redirect(w, r, guard.LoginURL(r), http.StatusSeeOther)
		return
	}

	log.Error("failed to load dashboard", slog.String("kind", kind.String()), sl.Err(err))
	h.render.Failed(w, r, StatusFor(kind), session.MessageFor(err), r.URL.RequestURI())
}

// StatusFor HTTP-статус страницы ошибки для класса ошибки бэкенда.
func StatusFor(kind apiclient.Kind) int {
	switch kind {
	case apiclient.KindNetwork, apiclient.KindServer:
		return http.StatusBadGateway
	case apiclient.KindValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
