// Package login реализует HTTP-обработчики страницы входа.
//
// Форма декодируется через render.DecodeForm и проверяется валидатором,
// затем вход выполняет сессия запроса. После успешного входа браузер
// уходит на безопасный адрес from или на стартовую страницу роли.
package login

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/cafe-maiolini/internal/guard"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/response"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

// MsgTooManyAttempts текст для превысивших частоту запросов.
const MsgTooManyAttempts = "Muitas tentativas. Aguarde alguns instantes e tente novamente."

const page = "login"

// Request поля формы входа.
type Request struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
	From     string `form:"from"`
}

// Handler обрабатывает GET и POST /login.
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

// Form показывает форму входа. Вошедший пользователь сразу уходит дальше.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}
	from := r.URL.Query().Get("from")
	if user := s.User(); s.IsAuthenticated() && user != nil {
		http.Redirect(w, r, Target(from, user.TipoUsuario), http.StatusSeeOther)
		return
	}
	h.render.Render(w, r, http.StatusOK, page, web.Page{
		Title: "Entrar",
		Form:  web.LoginForm{From: safe(from)},
	})
}

// ServeHTTP выполняет вход.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}

	var req Request
	if err := render.DecodeForm(r.Body, &req); err != nil {
		log.Error("failed to decode form", sl.Err(err))
		h.fail(w, r, http.StatusBadRequest, req, "Formulário inválido")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		h.fail(w, r, http.StatusUnprocessableEntity, req, response.FirstMessage(err.(validator.ValidationErrors)))
		return
	}

	res := s.Login(r.Context(), req.Email, req.Password)
	if !res.Success || res.User == nil {
		h.fail(w, r, http.StatusUnauthorized, req, res.Message)
		return
	}

	log.Info("user logged in", slog.Int64("user_id", res.User.ID))
	http.Redirect(w, r, Target(req.From, res.User.TipoUsuario), http.StatusSeeOther)
}

// Limited отвечает 429, когда с одного IP слишком часто отправляют форму.
func (h *Handler) Limited(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusTooManyRequests, page, web.Page{
		Title: "Entrar",
		Alert: web.ErrorAlert(MsgTooManyAttempts),
		Form:  web.LoginForm{Email: r.PostFormValue("email"), From: safe(r.PostFormValue("from"))},
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, req Request, msg string) {
	h.render.Render(w, r, status, page, web.Page{
		Title: "Entrar",
		Alert: web.ErrorAlert(msg),
		Form:  web.LoginForm{Email: req.Email, From: safe(req.From)},
	})
}

// Target куда отправить вошедшего пользователя: безопасный from важнее стартовой страницы роли.
func Target(from string, role models.Role) string {
	if target, ok := guard.SafeFrom(from); ok {
		return target
	}
	return role.Home()
}

func safe(from string) string {
	target, _ := guard.SafeFrom(from)
	return target
}
