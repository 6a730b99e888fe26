package memory

import (
	"context"
	"sync"

	"devnotes/internal/model"
	"devnotes/internal/repository"
)

var (
	_ repository.NoteRepository     = (*repo)(nil)
	_ repository.TagCollectionStore = (*TagStore)(nil)
	_ repository.SettingsStore      = (*SettingsStore)(nil)
)

type repo struct {
	mu    sync.RWMutex
	notes map[string]model.Note
}

// NewRepository создает новый экземпляр in-memory репозитория на основе map
func NewRepository() repository.NoteRepository {
	return &repo{
		notes: make(map[string]model.Note),
	}
}

// Insert сохраняет копию заметки
func (r *repo) Insert(ctx context.Context, note model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes[note.ID] = note.Clone()
	return nil
}

// Update перезаписывает существующую заметку
func (r *repo) Update(ctx context.Context, note model.Note) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[note.ID]; !exists {
		return false, nil
	}
	r.notes[note.ID] = note.Clone()
	return true, nil
}

// Delete удаляет заметку по ID
func (r *repo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[id]; !exists {
		return false, nil
	}
	delete(r.notes, id)
	return true, nil
}

// DeleteAll очищает хранилище
func (r *repo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes = make(map[string]model.Note)
	return nil
}

// FindByID возвращает заметку по её ID
func (r *repo) FindByID(ctx context.Context, id string) (model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, exists := r.notes[id]
	if !exists {
		return model.Note{}, repository.ErrNoteNotFound
	}
	return note.Clone(), nil
}

// List возвращает все заметки в каноническом порядке
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]model.Note, 0, len(r.notes))
	for _, note := range r.notes {
		notes = append(notes, note.Clone())
	}
	repository.SortCanonical(notes)

	return notes, nil
}

// TagStore - in-memory хранилище коллекции тегов
type TagStore struct {
	mu    sync.Mutex
	tags  []model.Tag
	saved bool
}

// NewTagStore создает пустое хранилище тегов
func NewTagStore() *TagStore {
	return &TagStore{}
}

// LoadTags возвращает копию сохраненной коллекции
func (s *TagStore) LoadTags() ([]model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.saved {
		return nil, repository.ErrNoTags
	}
	return append([]model.Tag(nil), s.tags...), nil
}

// SaveTags перезаписывает коллекцию
func (s *TagStore) SaveTags(tags []model.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tags = append([]model.Tag(nil), tags...)
	s.saved = true
	return nil
}

// SettingsStore - in-memory хранилище настроек
type SettingsStore struct {
	mu         sync.Mutex
	enabled    *bool
	permission *string
}

// NewSettingsStore создает пустое хранилище настроек
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

// NotificationsEnabled возвращает сохраненный флаг
func (s *SettingsStore) NotificationsEnabled() (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enabled == nil {
		return false, false, nil
	}
	return *s.enabled, true, nil
}

// SetNotificationsEnabled сохраняет флаг
func (s *SettingsStore) SetNotificationsEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = &enabled
	return nil
}

// NotificationPermission возвращает сохраненный статус разрешения
func (s *SettingsStore) NotificationPermission() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.permission == nil {
		return "", false, nil
	}
	return *s.permission, true, nil
}

// SetNotificationPermission сохраняет статус разрешения
func (s *SettingsStore) SetNotificationPermission(permission string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.permission = &permission
	return nil
}
