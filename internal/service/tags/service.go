package tags

import (
	"errors"
	"log"
	"strings"
	"sync"

	"devnotes/internal/model"
	"devnotes/internal/repository"
	svc "devnotes/internal/service"

	"github.com/google/uuid"
)

var _ svc.TagService = (*service)(nil)

type service struct {
	mu    sync.RWMutex
	store repository.TagCollectionStore
	tags  []model.Tag
}

// NewTagService создает хранилище тегов и загружает коллекцию.
// При первом запуске или битых данных используется набор по умолчанию.
func NewTagService(store repository.TagCollectionStore) svc.TagService {
	s := &service{store: store}
	s.load()
	return s
}

func (s *service) load() {
	tags, err := s.store.LoadTags()
	switch {
	case err == nil:
		s.tags = tags
		log.Printf("[TagService] loaded %d tags", len(tags))
		return
	case errors.Is(err, repository.ErrNoTags):
		log.Println("[TagService] no saved tags, seeding defaults")
	default:
		log.Printf("[TagService] tag load error, falling back to defaults: %v", err)
	}

	s.tags = model.DefaultTags()
	if err := s.persist(); err != nil {
		log.Printf("[TagService] failed to save default tags: %v", err)
	}
}

// persist сохраняет всю коллекцию, вызывается под s.mu
func (s *service) persist() error {
	if err := s.store.SaveTags(s.tags); err != nil {
		log.Printf("[TagService] tag save error: %v", err)
		if !errors.Is(err, repository.ErrStorageUnavailable) {
			err = repository.Unavailable("save tags", err)
		}
		return err
	}
	return nil
}

// List возвращает копию коллекции
func (s *service) List() []model.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Tag(nil), s.tags...)
}

// Get возвращает тег по ID
func (s *service) Get(id string) (model.Tag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.tags[i], true
	}
	return model.Tag{}, false
}

// Add добавляет тег в конец коллекции
func (s *service) Add(tag model.Tag) (model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addLocked(tag)
}

func (s *service) addLocked(tag model.Tag) (model.Tag, error) {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	s.tags = append(s.tags, tag)
	return tag, s.persist()
}

// Create создает новый тег после валидации
func (s *service) Create(name, color, icon string) (model.Tag, error) {
	tag := model.NewTag(name, color, icon)
	if err := tag.Validate(); err != nil {
		return model.Tag{}, err
	}

	// проверка и вставка под одной блокировкой
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isNameDuplicateLocked(tag.Name, "") {
		return model.Tag{}, model.ErrDuplicateTagName
	}
	return s.addLocked(tag)
}

// Update заменяет тег с совпадающим ID
func (s *service) Update(tag model.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateLocked(tag)
}

func (s *service) updateLocked(tag model.Tag) error {
	i := s.indexOf(tag.ID)
	if i < 0 {
		return nil
	}
	s.tags[i] = tag
	return s.persist()
}

// Edit обновляет тег после валидации
func (s *service) Edit(tag model.Tag) error {
	tag.Name = strings.TrimSpace(tag.Name)
	if err := tag.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isNameDuplicateLocked(tag.Name, tag.ID) {
		return model.ErrDuplicateTagName
	}
	return s.updateLocked(tag)
}

// Delete удаляет тег по ID. Снимки в заметках остаются как есть.
func (s *service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tags = append(s.tags[:i], s.tags[i+1:]...)
	return s.persist()
}

// IsNameDuplicate проверяет, есть ли другой тег с тем же нормализованным именем
func (s *service) IsNameDuplicate(name, excludingID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.isNameDuplicateLocked(name, excludingID)
}

func (s *service) isNameDuplicateLocked(name, excludingID string) bool {
	normalized := model.NormalizeTagName(name)
	for _, t := range s.tags {
		if excludingID != "" && t.ID == excludingID {
			continue
		}
		if model.NormalizeTagName(t.Name) == normalized {
			return true
		}
	}
	return false
}

func (s *service) indexOf(id string) int {
	for i, t := range s.tags {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// LinkedNotesCount считает заметки, чей снимок ссылается на тег с этим ID
func LinkedNotesCount(tagID string, notes []model.Note) int {
	count := 0
	for _, n := range notes {
		if n.Tag != nil && n.Tag.ID == tagID {
			count++
		}
	}
	return count
}
