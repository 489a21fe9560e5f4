// Package usuarios реализует страницу управления пользователями для администратора.
//
// Действия (одобрить или отклонить поставщика, включить или выключить
// пользователя) отправляются формами POST и возвращают браузер на тот же
// список. Итог действия передаётся в параметре ok или erro адреса.
package usuarios

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/cafe-maiolini/internal/apiclient"
	"github.com/magabrotheeeer/cafe-maiolini/internal/guard"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

// ListPath адрес списка пользователей.
const ListPath = "/admin/usuarios"

// PerPage размер страницы списка.
const PerPage = 20

// Параметры адреса с итогом действия.
const (
	flashOK  = "ok"
	flashErr = "erro"
)

const msgInvalidUser = "Usuário inválido"

type Handler struct {
	log    *slog.Logger
	svc    Service
	render Renderer
}

func New(log *slog.Logger, svc Service, render Renderer) *Handler {
	return &Handler{log: log, svc: svc, render: render}
}

// List GET /admin/usuarios.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.usuarios.List"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}

	filter := FilterFrom(r.URL.Query())
	data := web.UsuariosData{
		List:   &models.UserList{},
		Filter: filter,
		Back:   BackURL(r.URL.Query()),
	}
	if u := s.User(); u != nil {
		data.SelfID = u.ID
	}

	var alert *web.Alert
	switch q := r.URL.Query(); {
	case q.Get(flashErr) != "":
		alert = web.ErrorAlert(q.Get(flashErr))
	case q.Get(flashOK) != "":
		alert = web.SuccessAlert(q.Get(flashOK))
	}

	status := http.StatusOK
	list, err := h.svc.Users(r.Context(), s, filter)
	switch {
	case err != nil && apiclient.KindOf(err) == apiclient.KindAuth:
		log.Info("backend rejected session", sl.Err(err))
		http.Redirect(w, r, guard.LoginURL(r), http.StatusSeeOther)
		return
	case err != nil:
		log.Error("failed to list users", sl.Err(err))
		alert = web.ErrorAlert(session.MessageFor(err))
		status = http.StatusBadGateway
	default:
		data.List = list
	}

	h.render.Render(w, r, status, "usuarios", web.Page{
		Title: "Usuários",
		Alert: alert,
		Data:  data,
	})
}

// Approve POST /admin/usuarios/{id}/aprovar.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "handlers.admin.usuarios.Approve", h.svc.ApproveSupplier)
}

// Reject POST /admin/usuarios/{id}/rejeitar.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "handlers.admin.usuarios.Reject", h.svc.RejectSupplier)
}

// Toggle POST /admin/usuarios/{id}/status.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "handlers.admin.usuarios.Toggle", h.svc.ToggleUser)
}

type action func(ctx context.Context, creds apiclient.Credentials, userID int64) (string, error)

func (h *Handler) act(w http.ResponseWriter, r *http.Request, op string, do action) {
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}
	back := SafeBack(r.PostFormValue("back"))

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		log.Info("invalid user id", slog.String("id", chi.URLParam(r, "id")))
		http.Redirect(w, r, withFlash(back, flashErr, msgInvalidUser), http.StatusSeeOther)
		return
	}
	log = log.With(slog.Int64("user_id", id))

	msg, err := do(r.Context(), s, id)
	if err != nil {
		if apiclient.KindOf(err) == apiclient.KindAuth {
			log.Info("backend rejected session", sl.Err(err))
			http.Redirect(w, r, guard.LoginPath+"?from="+url.QueryEscape(back), http.StatusSeeOther)
			return
		}
		log.Info("admin action failed", sl.Err(err))
		http.Redirect(w, r, withFlash(back, flashErr, session.MessageFor(err)), http.StatusSeeOther)
		return
	}

	log.Info("admin action done")
	http.Redirect(w, r, withFlash(back, flashOK, msg), http.StatusSeeOther)
}

// FilterFrom читает фильтр списка из параметров запроса.
func FilterFrom(q url.Values) models.UserFilter {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	f := models.UserFilter{
		Page:    page,
		PerPage: PerPage,
		Busca:   strings.TrimSpace(q.Get("busca")),
	}
	switch tipo := models.Role(q.Get("tipo_usuario")); tipo {
	case models.RoleCliente, models.RoleFornecedor, models.RoleAdmin:
		f.TipoUsuario = string(tipo)
	}
	switch st := q.Get("status"); st {
	case "ativo", "inativo", "pendente":
		f.Status = st
	}
	return f
}

// BackURL адрес текущего списка без параметров итога действия.
func BackURL(q url.Values) string {
	clean := url.Values{}
	for k, v := range q {
		if k != flashOK && k != flashErr {
			clean[k] = v
		}
	}
	if len(clean) == 0 {
		return ListPath
	}
	return ListPath + "?" + clean.Encode()
}

// SafeBack допускает возврат только на список пользователей.
func SafeBack(back string) string {
	target, ok := guard.SafeFrom(back)
	if !ok {
		return ListPath
	}
	u, err := url.Parse(target)
	if err != nil || u.Path != ListPath {
		return ListPath
	}
	return target
}

func withFlash(back, key, msg string) string {
	u, err := url.Parse(back)
	if err != nil {
		u = &url.URL{Path: ListPath}
	}
	q := u.Query()
	q.Del(flashOK)
	q.Del(flashErr)
	if msg != "" {
		q.Set(key, msg)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
