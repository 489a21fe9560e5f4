package apiclient

import "context"

// Credentials источник bearer-токена для запроса.
//
// Rejected вызывается клиентом, когда бэкенд ответил 401: владелец токена
// обязан забыть его и перейти в анонимное состояние.
type Credentials interface {
	Token() string
	Rejected(ctx context.Context)
}

type anonymous struct{}

func (anonymous) Token() string { return "" }

func (anonymous) Rejected(context.Context) {}

// Anonymous запросы без токена. Ответ 401 на них ничего не меняет.
var Anonymous Credentials = anonymous{}

// StaticToken фиксированный токен без реакции на 401.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

func (StaticToken) Rejected(context.Context) {}
