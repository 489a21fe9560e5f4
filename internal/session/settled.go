package session

import (
	"sync"
	"time"

	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

// settledTTL сколько результат фоновой проверки ждёт следующего запроса.
const settledTTL = time.Minute

type settledUser struct {
	token   string
	user    *models.User
	expires time.Time
}

// settled результаты проверок, которые закончились после того, как запрос
// перестал их ждать. Следующий Load той же сессии забирает результат один раз.
type settled struct {
	mu      sync.Mutex
	entries map[string]settledUser
	now     func() time.Time
}

func newSettled() *settled {
	return &settled{entries: make(map[string]settledUser), now: time.Now}
}

func (s *settled) put(sid, token string, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, k)
		}
	}
	s.entries[sid] = settledUser{token: token, user: user, expires: now.Add(settledTTL)}
}

// take возвращает пользователя, если результат получен для того же токена и не устарел.
func (s *settled) take(sid, token string) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sid]
	if !ok {
		return nil, false
	}
	delete(s.entries, sid)
	if e.token != token || s.now().After(e.expires) {
		return nil, false
	}
	return e.user, true
}

func (s *settled) drop(sid string) {
	s.mu.Lock()
	delete(s.entries, sid)
	s.mu.Unlock()
}
