// Package backendtest поддельный бэкенд Café Maiolini для тестов.
//
// Сервер держит пользователей в памяти, выдаёт HS256-токены с теми же
// claims, что и настоящий бэкенд, и отвечает теми же сообщениями.
package backendtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

var secret = []byte("backendtest-secret")

// Server поддельный бэкенд. Базовый адрес API: BaseURL().
type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	nextID   int64
	users    map[int64]*account
	revoked  map[string]bool
	resets   map[string]int64

	seq atomic.Int64

	// MeDelay задержка ответа /auth/me.
	MeDelay time.Duration
	// MeCalls число обращений к /auth/me.
	MeCalls atomic.Int32
	// FailWith, если не 0, все запросы кроме /health получают этот статус.
	FailWith atomic.Int32
}

type account struct {
	user     models.User
	password string
}

// New запускает сервер и останавливает его по завершении теста.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		users:   make(map[int64]*account),
		revoked: make(map[string]bool),
		resets:  make(map[string]int64),
	}
	s.srv = httptest.NewServer(s.routes())
	t.Cleanup(s.srv.Close)
	return s
}

// BaseURL адрес API, аналог http://localhost:5001/api.
func (s *Server) BaseURL() string {
	return s.srv.URL + "/api"
}

// Close останавливает сервер раньше конца теста.
func (s *Server) Close() {
	s.srv.Close()
}

// AddUser добавляет пользователя и возвращает его с присвоенным id.
func (s *Server) AddUser(u models.User, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u.ID = s.nextID
	if u.Email == "" {
		u.Email = fmt.Sprintf("user%d@cafe.test", u.ID)
	}
	s.users[u.ID] = &account{user: u, password: password}
	return u
}

// User возвращает текущее состояние пользователя.
func (s *Server) User(id int64) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	return a.user, true
}

// Token выдаёт действующий токен пользователя.
func (s *Server) Token(id int64) string {
	return s.sign(id, time.Now().Add(7*24*time.Hour))
}

// ExpiredToken выдаёт токен, истёкший час назад.
func (s *Server) ExpiredToken(id int64) string {
	return s.sign(id, time.Now().Add(-time.Hour))
}

// Revoke делает токен недействительным, как при деактивации пользователя.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
}

func (s *Server) sign(id int64, exp time.Time) string {
	s.mu.Lock()
	role := ""
	if a, ok := s.users[id]; ok {
		role = string(a.user.TipoUsuario)
	}
	s.mu.Unlock()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":      id,
		"tipo_usuario": role,
		"exp":          exp.Unix(),
		"jti":          strconv.FormatInt(s.seq.Add(1), 10),
	}).SignedString(secret)
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.failure)
	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", s.login)
		r.Post("/register", s.register)
		r.Post("/forgot-password", s.forgotPassword)
		r.Post("/validate-reset-token", s.validateResetToken)
		r.Post("/reset-password", s.resetPassword)
		r.With(s.auth).Get("/me", s.me)
		r.With(s.auth).Put("/update-profile", s.updateProfile)
		r.With(s.auth).Put("/change-password", s.changePassword)
	})
	r.With(s.auth, s.role(models.RoleCliente)).Get("/api/cliente/dashboard", s.clienteDashboard)
	r.With(s.auth, s.role(models.RoleFornecedor)).Get("/api/fornecedor/dashboard", s.fornecedorDashboard)
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(s.auth, s.role(models.RoleAdmin))
		r.Get("/dashboard", s.adminDashboard)
		r.Get("/usuarios", s.listUsers)
		r.Put("/aprovar-fornecedor/{id}", s.approveSupplier)
		r.Delete("/rejeitar-fornecedor/{id}", s.rejectSupplier)
		r.Put("/toggle-usuario/{id}", s.toggleUser)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func (s *Server) failure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code := int(s.FailWith.Load()); code != 0 && r.URL.Path != "/api/health" {
			writeMessage(w, code, "Erro interno: falha simulada")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxKey struct{}

func currentUser(r *http.Request) *account {
	a, _ := r.Context().Value(ctxKey{}).(*account)
	return a
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeMessage(w, http.StatusUnauthorized, "Token é obrigatório")
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return secret, nil })
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				writeMessage(w, http.StatusUnauthorized, "Token expirado")
				return
			}
			writeMessage(w, http.StatusUnauthorized, "Token inválido")
			return
		}

		id, _ := claims["user_id"].(float64)
		s.mu.Lock()
		a, ok := s.users[int64(id)]
		revoked := s.revoked[raw]
		s.mu.Unlock()
		if !ok || revoked {
			writeMessage(w, http.StatusUnauthorized, "Token inválido")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, a)))
	})
}

func (s *Server) role(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			allowed := currentUser(r).user.TipoUsuario == role
			s.mu.Unlock()
			if !allowed {
				msg := "Acesso negado"
				if role == models.RoleAdmin {
					msg = "Acesso negado. Apenas administradores."
				}
				writeMessage(w, http.StatusForbidden, msg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}
