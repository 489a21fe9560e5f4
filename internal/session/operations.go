package session

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/cafe-maiolini/internal/backend"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

// Login входит по email и паролю. При неудаче состояние не меняется.
func (s *Session) Login(ctx context.Context, email, password string) Result {
	const op = "session.Login"
	log := s.mgr.log.With(sl.Op(op), slog.String("sid", shortSID(s.sid)))

	resp, err := s.mgr.backend.Login(ctx, email, password)
	if err != nil {
		log.Info("login failed", sl.Err(err))
		return Result{Message: MessageFor(err)}
	}
	return s.start(ctx, log, resp)
}

// Register регистрирует пользователя. Если бэкенд выдал токен, сессия
// аутентифицируется как после Login; иначе регистрация ждёт одобрения и
// сессия остаётся анонимной, но результат успешный.
func (s *Session) Register(ctx context.Context, reg models.Registration) Result {
	const op = "session.Register"
	log := s.mgr.log.With(sl.Op(op), slog.String("sid", shortSID(s.sid)))

	resp, err := s.mgr.backend.Register(ctx, reg)
	if err != nil {
		log.Info("registration failed", sl.Err(err))
		return Result{Message: MessageFor(err)}
	}
	if resp.Token == "" {
		log.Info("registration pending approval", slog.String("tipo_usuario", string(reg.TipoUsuario)))
		return Result{Success: true, Message: resp.Message, User: resp.User}
	}
	return s.start(ctx, log, resp)
}

func (s *Session) start(ctx context.Context, log *slog.Logger, resp *backend.AuthResponse) Result {
	if resp.Token == "" || resp.User == nil {
		log.Error("backend returned no token or user")
		return Result{Message: MsgInternal}
	}
	if err := s.mgr.store.Save(ctx, s.sid, resp.Token); err != nil {
		log.Error("failed to save credential", sl.Err(err))
	}
	s.mgr.dropUser(ctx, s.sid)
	s.authenticate(resp.Token, resp.User)
	log.Info("session authenticated", slog.Int64("user_id", resp.User.ID))
	return Result{Success: true, Message: resp.Message, User: resp.User}
}

// Logout удаляет токен и пользователя. Никогда не завершается неудачей.
func (s *Session) Logout(ctx context.Context) {
	const op = "session.Logout"
	if err := s.mgr.store.Clear(ctx, s.sid); err != nil {
		s.mgr.log.Error("failed to clear credential", sl.Op(op), sl.Err(err))
	}
	s.mgr.dropUser(ctx, s.sid)
	s.reset()
}

// UpdateProfile сохраняет профиль и перечитывает пользователя через /auth/me.
func (s *Session) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) Result {
	const op = "session.UpdateProfile"
	log := s.mgr.log.With(sl.Op(op), slog.String("sid", shortSID(s.sid)))

	if !s.IsAuthenticated() {
		return Result{Message: MsgNotAuthenticated}
	}
	msg, err := s.mgr.backend.UpdateProfile(ctx, s, upd)
	if err != nil {
		log.Info("profile update failed", sl.Err(err))
		return Result{Message: MessageFor(err)}
	}

	token := s.Token()
	user, err := s.mgr.backend.Me(ctx, s)
	if err != nil {
		log.Info("failed to refresh user, clearing credential", sl.Err(err))
		s.mgr.forget(ctx, s.sid, token)
		s.reset()
		return Result{Success: true, Message: msg}
	}

	s.mu.Lock()
	stillOurs := s.token == token && s.state == StateAuthenticated
	if stillOurs {
		s.user = user
	}
	s.mu.Unlock()
	if stillOurs && s.mgr.users != nil {
		if err := s.mgr.users.Set(ctx, s.sid, token, user); err != nil {
			log.Warn("failed to cache user", sl.Err(err))
		}
	}
	return Result{Success: true, Message: msg, User: user}
}

func (s *Session) ChangePassword(ctx context.Context, current, next string) Result {
	const op = "session.ChangePassword"

	if !s.IsAuthenticated() {
		return Result{Message: MsgNotAuthenticated}
	}
	msg, err := s.mgr.backend.ChangePassword(ctx, s, current, next)
	if err != nil {
		s.mgr.log.Info("password change failed", sl.Op(op), sl.Err(err))
		return Result{Message: MessageFor(err)}
	}
	return Result{Success: true, Message: msg}
}

// ForgotPassword запрашивает письмо для сброса пароля.
func (s *Session) ForgotPassword(ctx context.Context, email string) Result {
	resp, err := s.mgr.backend.ForgotPassword(ctx, email)
	if err != nil {
		return Result{Message: MessageFor(err)}
	}
	return Result{Success: true, Message: resp.Message, DebugToken: resp.DebugToken}
}

// ValidateResetToken проверяет токен сброса пароля. Success равен признаку valid.
func (s *Session) ValidateResetToken(ctx context.Context, token string) Result {
	resp, err := s.mgr.backend.ValidateResetToken(ctx, token)
	if err != nil {
		return Result{Message: MessageFor(err)}
	}
	return Result{Success: resp.Valid, Message: resp.Message, Email: resp.Email}
}

func (s *Session) ResetPassword(ctx context.Context, token, password string) Result {
	msg, err := s.mgr.backend.ResetPassword(ctx, token, password)
	if err != nil {
		return Result{Message: MessageFor(err)}
	}
	return Result{Success: true, Message: msg}
}
