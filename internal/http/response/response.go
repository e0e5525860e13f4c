// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Формат ответа повторяет
// контракт, который ожидает фронтенд: поле error-флага и человекочитаемое
// сообщение, полезная нагрузка добавляется обработчиками через встраивание.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную оболочку JSON‑ответа сервера.
// Поле Error — признак ошибки, Message — текст для пользователя.
type Response struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// OK возвращает успешный Response с переданным сообщением.
func OK(msg string) Response {
	return Response{
		Error:   false,
		Message: msg,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Error:   true,
		Message: msg,
	}
}

// ValidationError формирует Response с ошибкой на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Error:   true,
		Message: strings.Join(errsMsgs, ", "),
	}
}
