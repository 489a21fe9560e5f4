// Package profile реализует страницу профиля: просмотр, изменение данных и смену пароля.
package profile

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/cafe-maiolini/internal/guard"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/auth/password"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/response"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

const page = "perfil"

type Handler struct {
	log      *slog.Logger
	render   Renderer
	validate *validator.Validate
}

func New(log *slog.Logger, render Renderer) *Handler {
	return &Handler{
		log:      log,
		render:   render,
		validate: response.NewValidator(),
	}
}

// Show показывает профиль текущего пользователя.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}
	h.show(w, r, s, http.StatusOK, nil, FormFor(s.User()))
}

// Update сохраняет данные профиля.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.Update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}

	var req models.ProfileUpdate
	if err := render.DecodeForm(r.Body, &req); err != nil {
		log.Error("failed to decode form", sl.Err(err))
		h.show(w, r, s, http.StatusBadRequest, web.ErrorAlert(password.MsgInvalidRequest), req)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		h.show(w, r, s, http.StatusUnprocessableEntity, web.ErrorAlert(response.FirstMessage(err.(validator.ValidationErrors))), req)
		return
	}

	res := s.UpdateProfile(r.Context(), req)
	if !s.IsAuthenticated() {
		http.Redirect(w, r, guard.LoginURL(r), http.StatusSeeOther)
		return
	}
	if !res.Success {
		h.show(w, r, s, http.StatusBadRequest, web.ErrorAlert(res.Message), req)
		return
	}

	log.Info("profile updated")
	h.show(w, r, s, http.StatusOK, web.SuccessAlert(res.Message), FormFor(s.User()))
}

// ChangePassword меняет пароль. Новый пароль проверяется так же, как при сбросе.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.ChangePassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}
	form := FormFor(s.User())

	var req models.PasswordChange
	if err := render.DecodeForm(r.Body, &req); err != nil {
		log.Error("failed to decode form", sl.Err(err))
		h.show(w, r, s, http.StatusBadRequest, web.ErrorAlert(password.MsgInvalidRequest), form)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.show(w, r, s, http.StatusUnprocessableEntity, web.ErrorAlert(response.FirstMessage(err.(validator.ValidationErrors))), form)
		return
	}
	if msg := password.CheckReset(req.NewPassword, req.ConfirmPassword); msg != "" {
		h.show(w, r, s, http.StatusUnprocessableEntity, web.ErrorAlert(msg), form)
		return
	}

	res := s.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword)
	if !s.IsAuthenticated() {
		http.Redirect(w, r, guard.LoginURL(r), http.StatusSeeOther)
		return
	}
	if !res.Success {
		h.show(w, r, s, http.StatusBadRequest, web.ErrorAlert(res.Message), form)
		return
	}

	log.Info("password changed")
	h.show(w, r, s, http.StatusOK, web.SuccessAlert(res.Message), form)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request, s *session.Session, status int, alert *web.Alert, form models.ProfileUpdate) {
	if s.User() == nil {
		http.Redirect(w, r, guard.LoginURL(r), http.StatusSeeOther)
		return
	}
	h.render.Render(w, r, status, page, web.Page{
		Title: "Meu Perfil",
		Alert: alert,
		Form:  form,
	})
}

// FormFor заполняет форму профиля текущими данными пользователя.
func FormFor(u *models.User) models.ProfileUpdate {
	if u == nil {
		return models.ProfileUpdate{}
	}
	f := models.ProfileUpdate{
		Nome:     u.Nome,
		Telefone: deref(u.Telefone),
	}
	if c := u.Cliente; c != nil {
		f.Empresa = deref(c.Empresa)
		f.CNPJ = deref(c.CNPJ)
		f.Endereco = deref(c.Endereco)
		f.Cidade = deref(c.Cidade)
		f.Estado = deref(c.Estado)
		f.CEP = deref(c.CEP)
	}
	if p := u.Fornecedor; p != nil {
		f.NomeEmpresa = p.NomeEmpresa
		f.CNPJ = deref(p.CNPJ)
		f.Categoria = p.Categoria
		f.Descricao = deref(p.Descricao)
		f.Endereco = deref(p.Endereco)
		f.Cidade = deref(p.Cidade)
		f.Estado = deref(p.Estado)
		f.CEP = deref(p.CEP)
		f.Instagram = deref(p.Instagram)
		f.Site = deref(p.Site)
	}
	return f
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
