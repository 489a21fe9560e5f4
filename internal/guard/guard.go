// Package guard решает, можно ли показать защищённую страницу.
package guard

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
)

// Пути, на которые guard перенаправляет.
const (
	LoginPath  = "/login"
	DeniedPath = "/acesso-negado"
)

// Decision результат проверки доступа.
type Decision int

const (
	Allow Decision = iota
	ShowLoading
	RedirectLogin
	RedirectDenied
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "login"
	case RedirectDenied:
		return "denied"
	}
	return "unknown"
}

// Decide решает судьбу запроса. Пустая role допускает любую роль.
// Пока сессия проверяется, перенаправлений нет.
func Decide(state session.State, user *models.User, role models.Role) Decision {
	switch {
	case state.Pending():
		return ShowLoading
	case state != session.StateAuthenticated || user == nil:
		return RedirectLogin
	case role != "" && user.TipoUsuario != role:
		return RedirectDenied
	}
	return Allow
}

// LoadingRenderer рисует страницу ожидания, которая обновляется и приходит на target.
type LoadingRenderer func(w http.ResponseWriter, r *http.Request, target string)

// Require пропускает запрос только к сессии с ролью role (любой, если role пуста).
// Сессию кладёт в контекст middlewarectx.Session.
func Require(role models.Role, loading LoadingRenderer, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "guard.Require"

			var (
				state = session.StateAnonymous
				user  *models.User
			)
			if s := session.FromContext(r.Context()); s != nil {
				state, user = s.Snapshot()
			}

			decision := Decide(state, user, role)
			if decision != Allow {
				log.Debug("access decision",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("decision", decision.String()),
				)
			}

			switch decision {
			case ShowLoading:
				loading(w, r, refreshTarget(r))
			case RedirectLogin:
				http.Redirect(w, r, LoginURL(r), http.StatusSeeOther)
			case RedirectDenied:
				http.Redirect(w, r, DeniedPath, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// LoginURL адрес входа, запоминающий исходную страницу в from.
func LoginURL(r *http.Request) string {
	from := refreshTarget(r)
	if from == "/" {
		return LoginPath
	}
	return LoginPath + "?from=" + url.QueryEscape(from)
}

// refreshTarget страница, куда вернуться: сам адрес для GET, иначе страница, с которой пришла форма.
func refreshTarget(r *http.Request) string {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return r.URL.RequestURI()
	}
	if ref, err := url.Parse(r.Referer()); err == nil && (ref.Host == "" || ref.Host == r.Host) {
		if target, ok := SafeFrom(ref.RequestURI()); ok {
			return target
		}
	}
	return "/"
}

// SafeFrom проверяет, что from ведёт на страницу этого же сайта.
func SafeFrom(from string) (string, bool) {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.HasPrefix(from, "/\\") {
		return "", false
	}
	u, err := url.Parse(from)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if u.Path == LoginPath {
		return "", false
	}
	return u.RequestURI(), true
}
