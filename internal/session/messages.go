package session

import (
	"github.com/magabrotheeeer/cafe-maiolini/internal/apiclient"
)

// Сообщения, которые видит пользователь.
const (
	MsgConnection       = "Erro de conexão. Tente novamente."
	MsgInternal         = "Erro interno do servidor"
	MsgNotAuthenticated = "Usuário não autenticado"
)

// MessageFor переводит ошибку бэкенда в текст для пользователя.
// Ошибки 4xx показываются как есть, 5xx и сетевые заменяются общими.
func MessageFor(err error) string {
	switch apiclient.KindOf(err) {
	case apiclient.KindNetwork:
		return MsgConnection
	case apiclient.KindAuth, apiclient.KindValidation:
		if msg := apiclient.Message(err); msg != "" {
			return msg
		}
	}
	return MsgInternal
}
