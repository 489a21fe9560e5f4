// Package web отрисовывает HTML-страницы сайта из встроенных шаблонов.
//
// Каждая страница из templates/pages определяет блок "content" (и, при
// необходимости, "title") и выполняется внутри общего templates/layout.html,
// который рисует меню по состоянию сессии.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
)

//go:embed templates
var templatesFS embed.FS

// Виды сообщений над формой.
const (
	AlertError   = "error"
	AlertSuccess = "success"
	AlertInfo    = "info"
)

// Alert сообщение над содержимым страницы.
type Alert struct {
	Kind    string
	Message string
}

// ErrorAlert возвращает Alert об ошибке или nil для пустого сообщения.
func ErrorAlert(msg string) *Alert {
	if msg == "" {
		return nil
	}
	return &Alert{Kind: AlertError, Message: msg}
}

// SuccessAlert возвращает Alert об успехе или nil для пустого сообщения.
func SuccessAlert(msg string) *Alert {
	if msg == "" {
		return nil
	}
	return &Alert{Kind: AlertSuccess, Message: msg}
}

// Page данные страницы от обработчика.
type Page struct {
	Title string
	Alert *Alert
	Form  any // введённые значения формы, чтобы не терять их при ошибке
	Data  any
}

// SessionView то, что шаблоны знают о сессии.
type SessionView struct {
	State         string
	Pending       bool
	Authenticated bool
	IsClient      bool
	IsSupplier    bool
	IsAdmin       bool
	User          *models.User
	Home          string
}

type view struct {
	Page
	Path    string
	Session SessionView
	Year    int
}

// Renderer отрисовывает страницы.
type Renderer struct {
	pages map[string]*template.Template
	log   *slog.Logger
}

// New разбирает все шаблоны. Ошибка в любом шаблоне возвращается сразу.
func New(log *slog.Logger) (*Renderer, error) {
	const op = "web.New"

	base, err := template.New("layout.html").Funcs(Funcs()).ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	files, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if _, err := t.ParseFS(templatesFS, file); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = t
	}

	return &Renderer{pages: pages, log: log}, nil
}

// Has сообщает, есть ли страница name.
func (rd *Renderer) Has(name string) bool {
	_, ok := rd.pages[name]
	return ok
}

// Render отрисовывает страницу name со статусом status.
// Страница сначала собирается в буфер, чтобы ошибка шаблона не оставила полупустой ответ.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	const op = "web.Render"
	log := rd.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("page", name),
	)

	t, ok := rd.pages[name]
	if !ok {
		log.Error("unknown page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	v := view{
		Page:    page,
		Path:    r.URL.Path,
		Session: sessionView(session.FromContext(r.Context())),
		Year:    time.Now().Year(),
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", v); err != nil {
		log.Error("failed to execute template", sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Debug("failed to write response", sl.Err(err))
	}
}

// Loading отрисовывает страницу ожидания проверки сессии.
// Заголовок Refresh возвращает браузер на target через секунду.
func (rd *Renderer) Loading(w http.ResponseWriter, r *http.Request, target string) {
	w.Header().Set("Refresh", "1; url="+target)
	w.Header().Set("Cache-Control", "no-store")
	rd.Render(w, r, http.StatusOK, "loading", Page{Title: "Carregando...", Data: target})
}

// Failed отрисовывает страницу ошибки загрузки с сообщением msg и ссылкой на retry.
func (rd *Renderer) Failed(w http.ResponseWriter, r *http.Request, status int, msg, retry string) {
	rd.Render(w, r, status, "erro", Page{Title: "Erro", Alert: ErrorAlert(msg), Data: retry})
}

// NotFound отрисовывает страницу 404.
func (rd *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rd.Render(w, r, http.StatusNotFound, "404", Page{Title: "Página não encontrada"})
}

func sessionView(s *session.Session) SessionView {
	if s == nil {
		return SessionView{State: session.StateAnonymous.String()}
	}
	state, user := s.Snapshot()
	sv := SessionView{
		State:         state.String(),
		Pending:       state.Pending(),
		Authenticated: state == session.StateAuthenticated && user != nil,
	}
	if sv.Authenticated {
		sv.User = user
		sv.IsClient = user.TipoUsuario == models.RoleCliente
		sv.IsSupplier = user.TipoUsuario == models.RoleFornecedor
		sv.IsAdmin = user.TipoUsuario == models.RoleAdmin
		sv.Home = user.TipoUsuario.Home()
	}
	return sv
}
