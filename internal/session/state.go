package session

// State состояние сессии.
type State int

const (
	StateInit          State = iota // токен ещё не прочитан
	StateValidating                 // токен найден, /auth/me не завершился
	StateAuthenticated              // пользователь подтверждён
	StateAnonymous                  // токена нет или он отклонён
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateValidating:
		return "validating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// Pending сообщает, что проверка ещё не закончена.
func (s State) Pending() bool {
	return s == StateInit || s == StateValidating
}
