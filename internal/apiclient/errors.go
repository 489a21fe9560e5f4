package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind класс ошибки обращения к бэкенду.
type Kind int

// Классы ошибок.
const (
	KindNetwork    Kind = iota // ответ не получен
	KindAuth                   // 401, токен отклонён
	KindValidation             // прочие 4xx, сообщение показывается пользователю как есть
	KindServer                 // 5xx
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// NetworkMessage сообщение ошибки, когда ответ от бэкенда не получен.
const NetworkMessage = "connection error"

// Error ошибка обращения к бэкенду. StatusCode равен 0, если ответа не было.
type Error struct {
	StatusCode int
	Message    string
	Kind       Kind
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("apiclient: %s", e.Message)
	}
	return fmt.Sprintf("apiclient: status %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindForStatus классифицирует HTTP-статус ответа с ошибкой.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status >= http.StatusInternalServerError:
		return KindServer
	default:
		return KindValidation
	}
}

// KindOf возвращает класс ошибки. Ошибки не из этого пакета считаются серверными.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindServer
}

// Message возвращает сообщение ошибки бэкенда, если err её содержит.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func networkError(err error) *Error {
	return &Error{Message: NetworkMessage, Kind: KindNetwork, Err: err}
}

func statusError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return &Error{StatusCode: status, Message: message, Kind: KindForStatus(status)}
}
