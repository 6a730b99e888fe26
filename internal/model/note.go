package model

import (
	"strings"
	"time"
)

// Note представляет заметку (доменная модель)
type Note struct {
	ID           string     // UUID заметки
	Title        string     // Заголовок заметки
	Content      string     // Содержание заметки
	CreatedAt    time.Time  // Дата создания, не меняется после создания
	Tag          *Tag       // Снимок тега на момент сохранения (не ссылка)
	IsPinned     bool       // Закреплена ли заметка
	ReminderDate *time.Time // Время напоминания, nil - напоминания нет
}

// Validate проверяет валидность заметки
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == "" {
		return ErrEmptyNote
	}
	return nil
}

// HasReminder сообщает, установлено ли напоминание
func (n *Note) HasReminder() bool {
	return n.ReminderDate != nil
}

// ShareText формирует текст для отправки заметки
func (n *Note) ShareText() string {
	return n.Title + "\n\n" + n.Content
}

// Clone возвращает глубокую копию: снимок тега и дата напоминания не разделяются
func (n Note) Clone() Note {
	if n.Tag != nil {
		tag := *n.Tag
		n.Tag = &tag
	}
	if n.ReminderDate != nil {
		d := *n.ReminderDate
		n.ReminderDate = &d
	}
	return n
}
