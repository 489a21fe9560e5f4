// Package middlewarectx содержит HTTP middleware сайта.
//
// Session восстанавливает сессию браузера по cookie и кладёт её в контекст
// запроса, откуда её читают guard и обработчики. RateLimit ограничивает
// частоту отправки форм с одного IP.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/cafe-maiolini/internal/config"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
)

// SessionLoader восстанавливает сессию по идентификатору браузера.
type SessionLoader interface {
	Load(ctx context.Context, sid string) *session.Session
	New(sid string) *session.Session
}

// Session возвращает middleware, который выдаёт браузеру cookie с sid
// и загружает по нему сессию.
func Session(loader SessionLoader, cfg config.Session, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Session"

			var s *session.Session
			if sid, ok := readSID(r, cfg.CookieName); ok {
				s = loader.Load(r.Context(), sid)
			} else {
				sid := uuid.NewString()
				http.SetCookie(w, newCookie(cfg, sid))
				log.Debug("new browser session",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				s = loader.New(sid)
			}

			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), s)))
		})
	}
}

func readSID(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func newCookie(cfg config.Session, sid string) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Current возвращает сессию запроса. Если middleware Session не подключён,
// отвечает 500 и возвращает false.
func Current(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*session.Session, bool) {
	s := session.FromContext(r.Context())
	if s == nil {
		log.Error("no session in request context",
			slog.String("op", "middlewarectx.Current"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}
