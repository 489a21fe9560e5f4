// Package password реализует восстановление пароля: запрос письма
// (/esqueci-senha) и установку нового пароля по токену (/redefinir-senha).
package password

import (
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

// Сообщения форм восстановления.
const (
	MsgEmailRequired  = "Por favor, digite seu email"
	MsgFillAllFields  = "Por favor, preencha todos os campos"
	MsgTokenMissing   = "Token de recuperação não encontrado"
	MsgTokenInvalid   = "Token inválido ou expirado"
	MsgInvalidRequest = "Formulário inválido"
)

const (
	forgotPage = "esqueci-senha"
	resetPage  = "redefinir-senha"
)

// ForgotRequest форма запроса письма.
type ForgotRequest struct {
	Email string `form:"email"`
}

// ResetRequest форма нового пароля.
type ResetRequest struct {
	Token           string `form:"token"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

type Handler struct {
	log    *slog.Logger
	render Renderer
}

func New(log *slog.Logger, render Renderer) *Handler {
	return &Handler{log: log, render: render}
}

func (h *Handler) ForgotForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, forgotPage, web.Page{Title: "Esqueci minha senha", Form: web.EmailForm{}})
}

// Forgot запрашивает у бэкенда письмо со ссылкой для сброса.
func (h *Handler) Forgot(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.password.Forgot"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}

	var req ForgotRequest
	if err := render.DecodeForm(r.Body, &req); err != nil {
		log.Error("failed to decode form", sl.Err(err))
		h.forgotFail(w, r, http.StatusBadRequest, req, MsgInvalidRequest)
		return
	}
	if req.Email == "" {
		h.forgotFail(w, r, http.StatusUnprocessableEntity, req, MsgEmailRequired)
		return
	}

	res := s.ForgotPassword(r.Context(), req.Email)
	if !res.Success {
		log.Info("forgot password failed", slog.String("message", res.Message))
		h.forgotFail(w, r, http.StatusBadRequest, req, res.Message)
		return
	}

	msg := res.Message
	if res.DebugToken != "" {
		msg = fmt.Sprintf("%s (Token de desenvolvimento: %s)", msg, res.DebugToken)
	}
	h.render.Render(w, r, http.StatusOK, forgotPage, web.Page{
		Title: "Esqueci minha senha",
		Form:  web.EmailForm{Email: req.Email},
		Data:  msg,
	})
}

// ForgotLimited отвечает 429 на слишком частые запросы письма.
func (h *Handler) ForgotLimited(w http.ResponseWriter, r *http.Request) {
	h.forgotFail(w, r, http.StatusTooManyRequests, ForgotRequest{Email: r.PostFormValue("email")}, login.MsgTooManyAttempts)
}

func (h *Handler) forgotFail(w http.ResponseWriter, r *http.Request, status int, req ForgotRequest, msg string) {
	h.render.Render(w, r, status, forgotPage, web.Page{
		Title: "Esqueci minha senha",
		Alert: web.ErrorAlert(msg),
		Form:  web.EmailForm{Email: req.Email},
	})
}

// ResetForm проверяет токен из ссылки и показывает форму нового пароля.
func (h *Handler) ResetForm(w http.ResponseWriter, r *http.Request) {
	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		h.resetFail(w, r, http.StatusBadRequest, web.ResetData{}, MsgTokenMissing)
		return
	}

	res := s.ValidateResetToken(r.Context(), token)
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = MsgTokenInvalid
		}
		h.resetFail(w, r, http.StatusBadRequest, web.ResetData{}, msg)
		return
	}

	h.render.Render(w, r, http.StatusOK, resetPage, web.Page{
		Title: "Redefinir senha",
		Data:  web.ResetData{Token: token, Email: res.Email, Valid: true},
	})
}

// Reset устанавливает новый пароль.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.password.Reset"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	s, ok := middlewarectx.Current(w, r, h.log)
	if !ok {
		return
	}

	var req ResetRequest
	if err := render.DecodeForm(r.Body, &req); err != nil {
		log.Error("failed to decode form", sl.Err(err))
		h.resetFail(w, r, http.StatusBadRequest, web.ResetData{}, MsgInvalidRequest)
		return
	}
	if req.Token == "" {
		h.resetFail(w, r, http.StatusBadRequest, web.ResetData{}, MsgTokenMissing)
		return
	}

	data := web.ResetData{Token: req.Token, Email: req.Email, Valid: true}
	if msg := CheckReset(req.Password, req.ConfirmPassword); msg != "" {
		h.resetFail(w, r, http.StatusUnprocessableEntity, data, msg)
		return
	}

	res := s.ResetPassword(r.Context(), req.Token, req.Password)
	if !res.Success {
		log.Info("password reset failed", slog.String("message", res.Message))
		h.resetFail(w, r, http.StatusBadRequest, data, res.Message)
		return
	}

	log.Info("password reset")
	h.render.Render(w, r, http.StatusOK, resetPage, web.Page{
		Title: "Senha redefinida",
		Data:  web.ResetData{Done: true},
	})
}

// CheckReset проверяет новый пароль в порядке показа сообщений.
func CheckReset(password, confirm string) string {
	switch {
	case password == "" || confirm == "":
		return MsgFillAllFields
	case utf8.RuneCountInString(password) < register.MinPasswordLen:
		return register.MsgPasswordShort
	case password != confirm:
		return register.MsgPasswordMismatch
	}
	return ""
}

func (h *Handler) resetFail(w http.ResponseWriter, r *http.Request, status int, data web.ResetData, msg string) {
	h.render.Render(w, r, status, resetPage, web.Page{
		Title: "Redefinir senha",
		Alert: web.ErrorAlert(msg),
		Data:  data,
	})
}
