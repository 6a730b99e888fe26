// Package diskvstore хранит коллекцию тегов и настройки приложения
// в файловом key-value хранилище diskv: одна запись на ключ, запись целиком.
package diskvstore

import (
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"

	"devnotes/internal/model"
	"devnotes/internal/repository"
)

const (
	// TagsKey - фиксированный ключ коллекции тегов
	TagsKey = "saved_tags"
	// NotificationsKey - ключ флага уведомлений
	NotificationsKey = "notifications_enabled"
	// PermissionKey - ключ последнего статуса системного разрешения
	PermissionKey = "notification_permission"
)

var (
	_ repository.TagCollectionStore = (*Store)(nil)
	_ repository.SettingsStore      = (*Store)(nil)
)

// Store - хранилище тегов и настроек на диске
type Store struct {
	d *diskv.Diskv
}

// New создает хранилище в каталоге basePath
func New(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// LoadTags читает всю коллекцию тегов.
// Если ключа нет - ErrNoTags, если данные битые - ошибка декодирования.
func (s *Store) LoadTags() ([]model.Tag, error) {
	if !s.d.Has(TagsKey) {
		return nil, repository.ErrNoTags
	}
	data, err := s.d.Read(TagsKey)
	if err != nil {
		return nil, repository.Unavailable("read tags", err)
	}
	var tags []model.Tag
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return tags, nil
}

// SaveTags сериализует коллекцию и перезаписывает ключ
func (s *Store) SaveTags(tags []model.Tag) error {
	if tags == nil {
		tags = []model.Tag{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	if err := s.d.Write(TagsKey, data); err != nil {
		return repository.Unavailable("write tags", err)
	}
	return nil
}

// NotificationsEnabled возвращает сохраненный флаг уведомлений
func (s *Store) NotificationsEnabled() (bool, bool, error) {
	if !s.d.Has(NotificationsKey) {
		return false, false, nil
	}
	data, err := s.d.Read(NotificationsKey)
	if err != nil {
		return false, false, repository.Unavailable("read settings", err)
	}
	var enabled bool
	if err := json.Unmarshal(data, &enabled); err != nil {
		return false, false, fmt.Errorf("decode settings: %w", err)
	}
	return enabled, true, nil
}

// SetNotificationsEnabled сохраняет флаг уведомлений
func (s *Store) SetNotificationsEnabled(enabled bool) error {
	data, _ := json.Marshal(enabled)
	if err := s.d.Write(NotificationsKey, data); err != nil {
		return repository.Unavailable("write settings", err)
	}
	return nil
}

// NotificationPermission возвращает сохраненный статус разрешения
func (s *Store) NotificationPermission() (string, bool, error) {
	if !s.d.Has(PermissionKey) {
		return "", false, nil
	}
	data, err := s.d.Read(PermissionKey)
	if err != nil {
		return "", false, repository.Unavailable("read settings", err)
	}
	return string(data), true, nil
}

// SetNotificationPermission сохраняет статус разрешения
func (s *Store) SetNotificationPermission(permission string) error {
	if err := s.d.WriteString(PermissionKey, permission); err != nil {
		return repository.Unavailable("write settings", err)
	}
	return nil
}
