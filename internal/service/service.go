package service

import (
	"context"

	"devnotes/internal/model"
)

// NoteService интерфейс для бизнес-логики работы с заметками
type NoteService interface {
	// Fetch возвращает все заметки в каноническом порядке (закрепленные первыми, новые первыми)
	Fetch(ctx context.Context) ([]model.Note, error)

	// Get возвращает заметку по её ID
	Get(ctx context.Context, id string) (model.Note, error)

	// Add валидирует и сохраняет новую заметку, назначая ID и CreatedAt при их отсутствии
	Add(ctx context.Context, note model.Note) (model.Note, error)

	// Update полностью перезаписывает заметку; отсутствующий ID - не ошибка
	Update(ctx context.Context, note model.Note) error

	// TogglePin переключает закрепление; отсутствующий ID - не ошибка
	TogglePin(ctx context.Context, id string) error

	// Delete удаляет заметку; отсутствующий ID - не ошибка
	Delete(ctx context.Context, id string) error

	// DeleteAll удаляет все заметки
	DeleteAll(ctx context.Context) error
}

// TagService интерфейс хранилища тегов
type TagService interface {
	// List возвращает копию коллекции в порядке добавления
	List() []model.Tag

	// Get возвращает тег по ID
	Get(id string) (model.Tag, bool)

	// Add добавляет тег без проверки дубликатов
	Add(tag model.Tag) (model.Tag, error)

	// Create валидирует имя и палитру, проверяет дубликаты и добавляет тег
	Create(name, color, icon string) (model.Tag, error)

	// Update заменяет тег с тем же ID; отсутствующий ID - не ошибка
	Update(tag model.Tag) error

	// Edit валидирует и проверяет дубликаты, исключая сам тег, затем заменяет его
	Edit(tag model.Tag) error

	// Delete удаляет тег по ID, заметки не затрагиваются
	Delete(id string) error

	// IsNameDuplicate сравнивает имена без учета регистра и крайних пробелов
	IsNameDuplicate(name, excludingID string) bool
}
