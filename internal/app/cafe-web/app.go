package cafeweb

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/cafe-maiolini/internal/apiclient"
	"github.com/magabrotheeeer/cafe-maiolini/internal/backend"
	"github.com/magabrotheeeer/cafe-maiolini/internal/cache"
	"github.com/magabrotheeeer/cafe-maiolini/internal/config"
	"github.com/magabrotheeeer/cafe-maiolini/internal/credential"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/rabbitmq"
	"github.com/magabrotheeeer/cafe-maiolini/internal/session"
	"github.com/magabrotheeeer/cafe-maiolini/internal/web"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server *http.Server
	logger *slog.Logger
	redis  *cache.Cache
	leads  rabbitmq.LeadPublisher
}

// New поднимает зависимости сайта. Недоступный redis не мешает запуску:
// токены тогда живут в памяти процесса. Без rabbitmq.url заявки пишутся в лог.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.cafeweb.New"

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	api := backend.New(apiclient.New(cfg.BaseURL, cfg.Backend.Timeout, logger, apiclient.NewMetrics(reg)))

	var (
		store credential.Store
		users session.UserCache
	)
	redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		logger.Warn("redis unavailable, tokens are kept in memory", slog.String("op", op), sl.Err(err))
		store = credential.NewMemoryStore()
	} else {
		store = credential.NewFallbackStore(credential.NewRedisStore(redisCache.Db, cfg.TokenTTL), logger)
		users = cache.NewUserCache(redisCache, cfg.UserCacheTTL)
	}

	manager := session.NewManager(store, api, users, logger, session.Options{
		ValidateWait:    cfg.ValidateWait,
		ValidateTimeout: cfg.ValidateTimeout,
	})

	renderer, err := web.New(logger)
	if err != nil {
		closeRedis(redisCache, logger)
		return nil, err
	}

	var leads rabbitmq.LeadPublisher = rabbitmq.NewLogPublisher(logger)
	if cfg.RabbitMQ.URL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQ, logger)
		if err != nil {
			closeRedis(redisCache, logger)
			return nil, err
		}
		leads = pub
	}

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Log:       logger,
		Session:   cfg.Session,
		RateLimit: cfg.RateLimit,
		Manager:   manager,
		API:       api,
		Render:    renderer,
		Leads:     leads,
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		redis:  redisCache,
		leads:  leads,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	closeRedis(a.redis, a.logger)
	if err := a.leads.Close(); err != nil {
		a.logger.Error("failed to close lead publisher", sl.Err(err))
	}
}

func closeRedis(c *cache.Cache, logger *slog.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logger.Error("failed to close redis", sl.Err(err))
	}
}
