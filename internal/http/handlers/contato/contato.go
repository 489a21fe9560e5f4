// Package contato реализует страницу контактов и приём заявок с неё.
package contato

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/cafe-maiolini/internal/http/response"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

// Сообщения формы контактов.
const (
	MsgSent            = "Mensagem enviada com sucesso! Entraremos em contato em breve."
	MsgSendFailed      = "Não foi possível enviar sua mensagem. Tente novamente."
	MsgInvalidRequest  = "Formulário inválido"
	MsgTooManyAttempts = "Muitas mensagens enviadas. Aguarde alguns instantes e tente novamente."
)

const page = "contato"

type Handler struct {
	log      *slog.Logger
	pub      Publisher
	render   Renderer
	validate *validator.Validate
	now      func() time.Time
}

func New(log *slog.Logger, pub Publisher, render Renderer) *Handler {
	return &Handler{
		log:      log,
		pub:      pub,
		render:   render,
		validate: response.NewValidator(),
		now:      time.Now,
	}
}

// Form GET /contato.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, models.Lead{}, nil)
}

// ServeHTTP POST /contato: проверяет заявку и публикует её.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contato"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var lead models.Lead
	if err := render.DecodeForm(r.Body, &lead); err != nil {
		log.Error("failed to decode form", sl.Err(err))
		h.show(w, r, http.StatusBadRequest, lead, web.ErrorAlert(MsgInvalidRequest))
		return
	}
	trim(&lead)

	if err := h.validate.Struct(lead); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Info("invalid lead", sl.Err(err))
			h.show(w, r, http.StatusUnprocessableEntity, lead, web.ErrorAlert(response.FirstMessage(verrs)))
			return
		}
		log.Error("failed to validate lead", sl.Err(err))
		h.show(w, r, http.StatusBadRequest, lead, web.ErrorAlert(MsgInvalidRequest))
		return
	}

	lead.SentAt = h.now().UTC().Format(time.RFC3339)
	if err := h.pub.PublishLead(r.Context(), lead); err != nil {
		log.Error("failed to publish lead", sl.Err(err))
		h.show(w, r, http.StatusBadGateway, lead, web.ErrorAlert(MsgSendFailed))
		return
	}

	log.Info("lead accepted", slog.String("assunto", lead.Assunto))
	h.show(w, r, http.StatusOK, models.Lead{}, web.SuccessAlert(MsgSent))
}

// Limited отвечает 429, введённое в форму сохраняется.
func (h *Handler) Limited(w http.ResponseWriter, r *http.Request) {
	var lead models.Lead
	_ = render.DecodeForm(r.Body, &lead)
	h.show(w, r, http.StatusTooManyRequests, lead, web.ErrorAlert(MsgTooManyAttempts))
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request, status int, lead models.Lead, alert *web.Alert) {
	h.render.Render(w, r, status, page, web.Page{
		Title: "Contato",
		Alert: alert,
		Form:  lead,
		Data:  web.NewContatoData(),
	})
}

func trim(l *models.Lead) {
	for _, f := range []*string{&l.Nome, &l.Email, &l.Telefone, &l.Empresa, &l.Assunto, &l.Mensagem} {
		*f = strings.TrimSpace(*f)
	}
}
