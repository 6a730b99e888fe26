package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"devnotes/internal/model"
)

var (
	// ErrStorageUnavailable оборачивает любой сбой хранилища
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNoteNotFound возвращается FindByID, когда заметки нет
	ErrNoteNotFound = errors.New("note not found")

	// ErrNoTags возвращается LoadTags, если коллекция тегов еще не сохранялась
	ErrNoTags = errors.New("tag collection not found")
)

// Unavailable оборачивает ошибку бэкенда в ErrStorageUnavailable
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, ErrStorageUnavailable, err)
}

// NoteRepository интерфейс долговременного хранилища заметок с доступом по ID
type NoteRepository interface {
	// Insert сохраняет новую заметку вместе со снимком тега
	Insert(ctx context.Context, note model.Note) error

	// Update перезаписывает заметку; false, если заметки с таким ID нет
	Update(ctx context.Context, note model.Note) (bool, error)

	// Delete удаляет заметку по ID; false, если заметки не было
	Delete(ctx context.Context, id string) (bool, error)

	// DeleteAll удаляет все заметки одной операцией
	DeleteAll(ctx context.Context) error

	// FindByID возвращает заметку или ErrNoteNotFound
	FindByID(ctx context.Context, id string) (model.Note, error)

	// List возвращает все заметки: закрепленные первыми, внутри групп - новые первыми
	List(ctx context.Context) ([]model.Note, error)
}

// TagCollectionStore хранит всю коллекцию тегов под одним ключом
type TagCollectionStore interface {
	// LoadTags читает коллекцию; ErrNoTags, если ключа нет
	LoadTags() ([]model.Tag, error)

	// SaveTags сериализует и перезаписывает всю коллекцию
	SaveTags(tags []model.Tag) error
}

// SettingsStore хранит флаг "уведомления включены" уровня приложения
// и последнее решение о системном разрешении
type SettingsStore interface {
	// NotificationsEnabled возвращает значение и признак того, что оно было сохранено
	NotificationsEnabled() (enabled bool, ok bool, err error)

	// SetNotificationsEnabled сохраняет флаг
	SetNotificationsEnabled(enabled bool) error

	// NotificationPermission возвращает сохраненный статус разрешения
	NotificationPermission() (permission string, ok bool, err error)

	// SetNotificationPermission сохраняет статус разрешения
	SetNotificationPermission(permission string) error
}

// SortCanonical сортирует заметки в каноническом порядке:
// IsPinned по убыванию, затем CreatedAt по убыванию
func SortCanonical(notes []model.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
