// Package models содержит доменные структуры приложения: пользователя
// и задачу-заметку. Структуры используются в бизнес-логике, при работе
// с хранилищем и при формировании JSON-ответов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    `json:"id"`        // Уникальный идентификатор пользователя
	FullName     string    `json:"fullName"`  // Полное имя
	Email        string    `json:"email"`     // Электронная почта (уникальная)
	PasswordHash string    `json:"-"`         // Хэш пароля, никогда не сериализуется
	CreatedOn    time.Time `json:"createdOn"` // Дата создания учётной записи
}
