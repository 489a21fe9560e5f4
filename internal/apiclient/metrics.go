package apiclient

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics метрики обращений к бэкенду. Нулевой указатель допустим и ничего не пишет.
type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	forcedLogouts prometheus.Counter
}

// NewMetrics создаёт метрики и регистрирует их в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cafe_web",
				Subsystem: "backend",
				Name:      "requests_total",
				Help:      "Total number of requests sent to the backend API.",
			},
			[]string{"method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cafe_web",
				Subsystem: "backend",
				Name:      "request_duration_seconds",
				Help:      "Duration of backend API requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		forcedLogouts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "cafe_web",
				Subsystem: "backend",
				Name:      "forced_logouts_total",
				Help:      "Number of sessions logged out because the backend answered 401.",
			},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.forcedLogouts)
	return m
}

func (m *Metrics) observe(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	path = NormalizePath(path)
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (m *Metrics) forcedLogout() {
	if m == nil {
		return
	}
	m.forcedLogouts.Inc()
}

// NormalizePath убирает query и заменяет числовые сегменты на :id,
// чтобы не раздувать кардинальность меток.
func NormalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s == "" {
			continue
		}
		if _, err := strconv.ParseUint(s, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
