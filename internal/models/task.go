package models

import "time"

// Task представляет заметку-задачу пользователя.
// Каждая задача принадлежит ровно одному пользователю (UserUID),
// все операции чтения и изменения фильтруются по владельцу.
type Task struct {
	ID        string    `json:"id"`        // Уникальный идентификатор задачи
	Title     string    `json:"title"`     // Заголовок (обязательный)
	Content   string    `json:"content"`   // Содержимое (обязательное)
	Tags      []string  `json:"tags"`      // Теги, по умолчанию пустой список
	IsPinned  bool      `json:"isPinned"`  // Признак закреплённой задачи
	UserUID   string    `json:"userId"`    // Владелец задачи, неизменяемый
	CreatedOn time.Time `json:"createdOn"` // Дата создания записи
}

// TaskChanges используется для приёма данных частичного обновления задачи.
// Поля-указатели различают "не передано" и "передано пустым".
type TaskChanges struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"isPinned"`
}

// HasChanges сообщает, переданы ли изменяемые поля. IsPinned сам по себе
// изменением не считается, для него есть отдельная операция.
func (c TaskChanges) HasChanges() bool {
	return c.Title != nil || c.Content != nil || c.Tags != nil
}
