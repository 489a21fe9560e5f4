// Package cafeweb собирает сайт: маршруты, сессии, бэкенд и брокер заявок.
package cafeweb

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/cafe-maiolini/internal/backend"
	"github.com/magabrotheeeer/cafe-maiolini/internal/config"
	_ "github.com/magabrotheeeer/cafe-maiolini/internal/docs"
	"github.com/magabrotheeeer/cafe-maiolini/internal/guard"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/admin/usuarios"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/api/health"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/api/sessioninfo"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/auth/password"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/contato"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/pages"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/handlers/profile"
	"github.com/magabrotheeeer/cafe-maiolini/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

const healthTimeout = 3 * time.Second

// Deps зависимости маршрутов.
type Deps struct {
	Log       *slog.Logger
	Session   config.Session
	RateLimit config.RateLimit
	Manager   *session.Manager
	API       *backend.Client
	Render    *web.Renderer
	Leads     contato.Publisher
	Metrics   http.Handler
}

// RegisterRoutes регистрирует все маршруты сайта.
func RegisterRoutes(r chi.Router, d Deps) {
	log := d.Log

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}
	r.Get("/api/health", health.New(log, d.API, healthTimeout).ServeHTTP)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	withSession := middlewarectx.Session(d.Manager, d.Session, log)
	limited := func(rejected http.HandlerFunc) func(http.Handler) http.Handler {
		return middlewarectx.RateLimit(middlewarectx.NewIPLimiter(d.RateLimit), rejected, log)
	}

	pg := pages.New(d.Render)
	lg := login.New(log, d.Render)
	reg := register.New(log, d.Render)
	pw := password.New(log, d.Render)
	ct := contato.New(log, d.Leads, d.Render)
	db := dashboard.New(log, d.API, d.Render)
	pf := profile.New(log, d.Render)
	us := usuarios.New(log, d.API, d.Render)

	r.NotFound(withSession(http.HandlerFunc(pg.NotFound)).ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(withSession)

		// Открытые страницы
		r.Get("/", pg.Home)
		r.Get("/parceria", pg.Parceria)
		r.Get("/fornecedores", pg.Fornecedores)
		r.Get("/politica-de-privacidade", pg.Politica)
		r.Get("/termos-de-uso", pg.Termos)
		r.Get("/acesso-negado", pg.Denied)
		r.Get("/contato", ct.Form)
		r.With(limited(ct.Limited)).Post("/contato", ct.ServeHTTP)

		// Вход и восстановление доступа
		r.Get("/login", lg.Form)
		r.With(limited(lg.Limited)).Post("/login", lg.ServeHTTP)
		r.Get("/cadastro", reg.Form)
		r.Post("/cadastro", reg.ServeHTTP)
		r.Get("/esqueci-senha", pw.ForgotForm)
		r.With(limited(pw.ForgotLimited)).Post("/esqueci-senha", pw.Forgot)
		r.Get("/redefinir-senha", pw.ResetForm)
		r.Post("/redefinir-senha", pw.Reset)
		r.Post("/logout", logout.New(log).ServeHTTP)

		r.Get("/api/session", sessioninfo.New(log).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(guard.Require(models.RoleCliente, d.Render.Loading, log))
			r.Get("/dashboard", db.Cliente)
		})

		r.Group(func(r chi.Router) {
			r.Use(guard.Require(models.RoleFornecedor, d.Render.Loading, log))
			r.Get("/fornecedor/dashboard", db.Fornecedor)
		})

		r.Group(func(r chi.Router) {
			r.Use(guard.Require(models.RoleAdmin, d.Render.Loading, log))
			r.Get("/admin/dashboard", db.Admin)
			r.Get(usuarios.ListPath, us.List)
			r.Post(usuarios.ListPath+"/{id}/aprovar", us.Approve)
			r.Post(usuarios.ListPath+"/{id}/rejeitar", us.Reject)
			r.Post(usuarios.ListPath+"/{id}/status", us.Toggle)
		})

		// Любая роль
		r.Group(func(r chi.Router) {
			r.Use(guard.Require("", d.Render.Loading, log))
			r.Get("/perfil", pf.Show)
			r.Post("/perfil", pf.Update)
			r.Post("/perfil/senha", pf.ChangePassword)
		})
	})
}
