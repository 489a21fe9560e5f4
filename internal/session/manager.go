package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/magabrotheeeer/cafe-maiolini/internal/apiclient"
	"github.com/magabrotheeeer/cafe-maiolini/internal/credential"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/jwt"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

// Options параметры проверки токена.
type Options struct {
	// ValidateWait сколько запрос ждёт ответа /auth/me, прежде чем показать загрузку.
	ValidateWait time.Duration
	// ValidateTimeout предел для самого вызова /auth/me.
	ValidateTimeout time.Duration
}

// Manager создаёт сессии запросов и проверяет их токены.
type Manager struct {
	store     credential.Store
	backend   Backend
	users     UserCache
	inspector *jwt.Inspector
	log       *slog.Logger
	opts      Options
	group     singleflight.Group
	late      *settled
}

// NewManager создаёт Manager. users может быть nil, тогда кэш не используется.
func NewManager(store credential.Store, b Backend, users UserCache, log *slog.Logger, opts Options) *Manager {
	if opts.ValidateWait <= 0 {
		opts.ValidateWait = 2 * time.Second
	}
	if opts.ValidateTimeout <= 0 {
		opts.ValidateTimeout = 10 * time.Second
	}
	return &Manager{
		store:     store,
		backend:   b,
		users:     users,
		inspector: jwt.NewInspector(30 * time.Second),
		log:       log,
		opts:      opts,
		late:      newSettled(),
	}
}

// New возвращает анонимную сессию без обращения к хранилищу.
func (m *Manager) New(sid string) *Session {
	return &Session{sid: sid, mgr: m, state: StateAnonymous}
}

// Load восстанавливает сессию sid: Init -> Anonymous, Init -> Validating -> Authenticated|Anonymous.
// Если /auth/me не успел ответить за ValidateWait, сессия остаётся Validating,
// а проверка завершается в фоне.
func (m *Manager) Load(ctx context.Context, sid string) *Session {
	const op = "session.Load"
	log := m.log.With(sl.Op(op), slog.String("sid", shortSID(sid)))

	s := &Session{sid: sid, mgr: m, state: StateInit}

	token, found, err := m.store.Load(ctx, sid)
	if err != nil {
		log.Error("failed to load credential", sl.Err(err))
	}
	if err != nil || !found {
		s.reset()
		return s
	}

	if m.inspector.Expired(token) {
		log.Info("stored token expired, clearing")
		m.forget(ctx, sid, token)
		s.reset()
		return s
	}

	if user, ok := m.late.take(sid, token); ok {
		log.Debug("picked up finished validation")
		s.authenticate(token, user)
		return s
	}
	if user, ok := m.cachedUser(ctx, sid, token); ok {
		s.authenticate(token, user)
		return s
	}

	s.mu.Lock()
	s.token = token
	s.state = StateValidating
	s.mu.Unlock()

	ch := m.group.DoChan(sid+":"+token, func() (any, error) {
		return m.validate(context.WithoutCancel(ctx), sid, token)
	})

	timer := time.NewTimer(m.opts.ValidateWait)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.Err != nil {
			s.reset()
			return s
		}
		s.authenticate(token, res.Val.(*models.User))
	case <-timer.C:
		log.Debug("validation still running")
		go m.awaitLate(ch, sid, token)
	case <-ctx.Done():
		go m.awaitLate(ch, sid, token)
	}
	return s
}

// awaitLate сохраняет результат проверки, которую запрос не дождался.
func (m *Manager) awaitLate(ch <-chan singleflight.Result, sid, token string) {
	res := <-ch
	if res.Err != nil {
		return
	}
	m.late.put(sid, token, res.Val.(*models.User))
}

// validate вызывает /auth/me и доводит побочные эффекты до конца:
// кэширует пользователя или удаляет токен.
func (m *Manager) validate(ctx context.Context, sid, token string) (*models.User, error) {
	const op = "session.validate"
	log := m.log.With(sl.Op(op), slog.String("sid", shortSID(sid)))

	callCtx, cancel := context.WithTimeout(ctx, m.opts.ValidateTimeout)
	defer cancel()

	user, err := m.backend.Me(callCtx, apiclient.StaticToken(token))
	if err != nil {
		log.Info("token validation failed, clearing credential",
			slog.String("kind", apiclient.KindOf(err).String()), sl.Err(err))
		m.forget(ctx, sid, token)
		return nil, err
	}
	if user == nil {
		m.forget(ctx, sid, token)
		return nil, errors.New("empty user")
	}

	if m.users != nil {
		if err := m.users.Set(ctx, sid, token, user); err != nil {
			log.Warn("failed to cache user", sl.Err(err))
		}
	}
	return user, nil
}

func (m *Manager) cachedUser(ctx context.Context, sid, token string) (*models.User, bool) {
	if m.users == nil {
		return nil, false
	}
	user, ok, err := m.users.Get(ctx, sid, token)
	if err != nil {
		m.log.Warn("user cache unavailable", sl.Op("session.cachedUser"), sl.Err(err))
		return nil, false
	}
	return user, ok
}

// forget удаляет токен сессии, если в хранилище всё ещё лежит именно он:
// пользователь мог успеть войти заново.
func (m *Manager) forget(ctx context.Context, sid, token string) {
	const op = "session.forget"
	log := m.log.With(sl.Op(op), slog.String("sid", shortSID(sid)))

	current, found, err := m.store.Load(ctx, sid)
	if err != nil {
		log.Error("failed to load credential", sl.Err(err))
		return
	}
	if found && current == token {
		if err := m.store.Clear(ctx, sid); err != nil {
			log.Error("failed to clear credential", sl.Err(err))
		}
	}
	m.dropUser(ctx, sid)
}

func (m *Manager) dropUser(ctx context.Context, sid string) {
	m.late.drop(sid)
	if m.users == nil {
		return
	}
	if err := m.users.Invalidate(ctx, sid); err != nil {
		m.log.Warn("failed to invalidate cached user", sl.Op("session.dropUser"), sl.Err(err))
	}
}
