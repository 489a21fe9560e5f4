// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов и сообщений валидации форм.
package response

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status: статус запроса ("OK" или "Error").
// Поле Error: текст ошибки (опционально, при неуспехе).
// Поле Data: данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	// StatusOK: значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError: значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// NewValidator создаёт валидатор, который называет поля по тегу form.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// fieldLabels подписи полей форм, как они видны пользователю.
var fieldLabels = map[string]string{
	"email":            "E-mail",
	"password":         "Senha",
	"nome":             "Nome",
	"tipo_usuario":     "Tipo de usuário",
	"estado":           "Estado",
	"current_password": "Senha atual",
	"new_password":     "Nova senha",
	"assunto":          "Assunto",
	"mensagem":         "Mensagem",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// FieldMessage переводит одно нарушение валидации в текст для пользователя.
func FieldMessage(err validator.FieldError) string {
	switch err.ActualTag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", label(err.Field()))
	case "email":
		return "E-mail inválido"
	case "oneof":
		return fmt.Sprintf("%s inválido", label(err.Field()))
	case "len":
		return fmt.Sprintf("%s deve ter %s caracteres", label(err.Field()), err.Param())
	default:
		return fmt.Sprintf("%s inválido", label(err.Field()))
	}
}

// FirstMessage текст первого нарушения, для alert над формой.
func FirstMessage(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return ""
	}
	return FieldMessage(errs[0])
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Нарушения объединяются через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, FieldMessage(err))
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
	}
}
