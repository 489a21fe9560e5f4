package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/middleware"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/cafe-maiolini/internal/config"
)

const visitorIdle = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiter хранит отдельный rate.Limiter на каждый IP клиента.
type IPLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewIPLimiter создаёт IPLimiter с частотой и запасом из конфига.
func NewIPLimiter(cfg config.RateLimit) *IPLimiter {
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &IPLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(cfg.RPS),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow сообщает, можно ли пропустить ещё один запрос с ip.
func (l *IPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > visitorIdle {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorIdle {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// RateLimit возвращает middleware, ограничивающий запросы с одного IP.
// Отклонённый запрос передаётся в rejected, который отвечает 429;
// если rejected nil, отдаётся голый 429.
func RateLimit(l *IPLimiter, rejected http.Handler, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RateLimit"

			ip := clientIP(r)
			if !l.Allow(ip) {
				log.Warn("too many requests",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("ip", ip),
					slog.String("path", r.URL.Path),
				)
				if rejected == nil {
					http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
					return
				}
				rejected.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP адрес клиента; после middleware.RealIP в RemoteAddr может не быть порта.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
