// Package register реализует HTTP-обработчики регистрации клиента и поставщика.
package register

import (
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/cafe-maiolini/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/response"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

// MinPasswordLen минимальная длина пароля.
const MinPasswordLen = 6

// Сообщения проверки формы.
const (
	MsgPasswordMismatch = "As senhas não coincidem"
	MsgPasswordShort    = "A senha deve ter pelo menos 6 caracteres"
	MsgCompanyRequired  = "Nome da empresa é obrigatório para fornecedores"
	MsgCategoryRequired = "Categoria é obrigatória para fornecedores"
)

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

// Form показывает форму регистрации; ?tipo=fornecedor открывает вкладку поставщика.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	tipo := models.RoleCliente
	if models.Role(r.URL.Query().Get("tipo")) == models.RoleFornecedor {
		tipo = models.RoleFornecedor
	}
	h.render.Render(w, r, http.StatusOK, "cadastro", web.Page{
		Title: "Cadastro",
		Form:  models.Registration{TipoUsuario: tipo},
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}

	var req models.Registration
	if err := render.DecodeForm(r.Body, &req); err != nil {
		log.Error("failed to decode form", sl.Err(err))
		h.fail(w, r, http.StatusBadRequest, req, "Formulário inválido")
		return
	}
	if req.TipoUsuario == "" {
		req.TipoUsuario = models.RoleCliente
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		h.fail(w, r, http.StatusUnprocessableEntity, req, response.FirstMessage(err.(validator.ValidationErrors)))
		return
	}
	if msg := Check(req); msg != "" {
		log.Info("validation failed", slog.String("reason", msg))
		h.fail(w, r, http.StatusUnprocessableEntity, req, msg)
		return
	}

	res := s.Register(r.Context(), req)
	if !res.Success {
		h.fail(w, r, http.StatusBadRequest, req, res.Message)
		return
	}

	if user := s.User(); s.IsAuthenticated() && user != nil {
		log.Info("user registered and logged in", slog.Int64("user_id", user.ID))
		http.Redirect(w, r, user.TipoUsuario.Home(), http.StatusSeeOther)
		return
	}

	log.Info("registration awaiting approval", slog.String("tipo_usuario", string(req.TipoUsuario)))
	h.render.Render(w, r, http.StatusOK, "login", web.Page{
		Title: "Entrar",
		Alert: &web.Alert{Kind: web.AlertInfo, Message: res.Message},
		Form:  web.LoginForm{Email: req.Email},
	})
}

// Check проверки, которые валидатор не выражает, в порядке их показа пользователю.
func Check(req models.Registration) string {
	switch {
	case req.Password != req.ConfirmPassword:
		return MsgPasswordMismatch
	case utf8.RuneCountInString(req.Password) < MinPasswordLen:
		return MsgPasswordShort
	case req.TipoUsuario == models.RoleFornecedor && req.NomeEmpresa == "":
		return MsgCompanyRequired
	case req.TipoUsuario == models.RoleFornecedor && req.Categoria == "":
		return MsgCategoryRequired
	}
	return ""
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, req models.Registration, msg string) {
	req.Password, req.ConfirmPassword = "", ""
	h.render.Render(w, r, status, "cadastro", web.Page{
		Title: "Cadastro",
		Alert: web.ErrorAlert(msg),
		Form:  req,
	})
}
