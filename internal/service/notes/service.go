package notes

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"devnotes/internal/clock"
	"devnotes/internal/model"
	"devnotes/internal/repository"
	svc "devnotes/internal/service"

	"github.com/google/uuid"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	// mu сериализует все изменения коллекции (один писатель)
	mu             sync.Mutex
	noteRepository repository.NoteRepository
	events         *EventService
	clock          clock.Clock
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками.
// events может быть nil, если подписчики не нужны.
func NewNoteService(noteRepository repository.NoteRepository, events *EventService, clk clock.Clock) svc.NoteService {
	if events == nil {
		events = NewEventService()
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &service{
		noteRepository: noteRepository,
		events:         events,
		clock:          clk,
	}
}

// Fetch возвращает все заметки в каноническом порядке
func (s *service) Fetch(ctx context.Context) ([]model.Note, error) {
	notes, err := s.noteRepository.List(ctx)
	if err != nil {
		log.Printf("[NoteService] fetch error: %v", err)
		return nil, err
	}
	return notes, nil
}

// Get возвращает заметку по её ID
func (s *service) Get(ctx context.Context, id string) (model.Note, error) {
	if id == "" {
		return model.Note{}, errors.New("id cannot be empty")
	}
	return s.noteRepository.FindByID(ctx, id)
}

// Add сохраняет новую заметку вместе со снимком её текущего тега
func (s *service) Add(ctx context.Context, note model.Note) (model.Note, error) {
	if err := note.Validate(); err != nil {
		return model.Note{}, err
	}
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = s.clock.Now()
	}
	note = note.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.noteRepository.Insert(ctx, note); err != nil {
		log.Printf("[NoteService] add %s: %v", note.ID, err)
		return model.Note{}, err
	}

	s.events.Publish(ctx, Event{Kind: EventSaved, Note: note.Clone()})
	return note, nil
}

// Update перезаписывает заголовок, содержимое, дату создания, закрепление,
// напоминание и снимок тега. CreatedAt передается вызывающим без изменений.
func (s *service) Update(ctx context.Context, note model.Note) error {
	if strings.TrimSpace(note.ID) == "" {
		return errors.New("id cannot be empty")
	}
	if err := note.Validate(); err != nil {
		return err
	}
	note = note.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.noteRepository.Update(ctx, note)
	if err != nil {
		log.Printf("[NoteService] update %s: %v", note.ID, err)
		return err
	}
	if !found {
		// заметку могли удалить параллельно
		log.Printf("[NoteService] update %s: not found, skipped", note.ID)
		return nil
	}

	s.events.Publish(ctx, Event{Kind: EventSaved, Note: note.Clone()})
	return nil
}

// TogglePin переключает IsPinned и сохраняет заметку
func (s *service) TogglePin(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.noteRepository.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoteNotFound) {
		return nil
	}
	if err != nil {
		log.Printf("[NoteService] toggle pin %s: %v", id, err)
		return err
	}

	note.IsPinned = !note.IsPinned
	found, err := s.noteRepository.Update(ctx, note)
	if err != nil {
		log.Printf("[NoteService] toggle pin %s: %v", id, err)
		return err
	}
	if found {
		s.events.Publish(ctx, Event{Kind: EventPinToggled, Note: note.Clone()})
	}
	return nil
}

// Delete удаляет заметку по ID
func (s *service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.noteRepository.Delete(ctx, id)
	if err != nil {
		log.Printf("[NoteService] delete %s: %v", id, err)
		return err
	}
	if found {
		s.events.Publish(ctx, Event{Kind: EventDeleted, IDs: []string{id}})
	}
	return nil
}

// DeleteAll удаляет все заметки. Либо удаляется всё, либо возвращается ошибка хранилища.
func (s *service) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.noteRepository.List(ctx)
	if err != nil {
		log.Printf("[NoteService] delete all: %v", err)
		return err
	}

	if err := s.noteRepository.DeleteAll(ctx); err != nil {
		log.Printf("[NoteService] delete all: %v", err)
		return err
	}

	ids := make([]string, len(existing))
	for i, n := range existing {
		ids[i] = n.ID
	}
	log.Printf("[NoteService] deleted all notes (%d)", len(ids))
	s.events.Publish(ctx, Event{Kind: EventCleared, IDs: ids})
	return nil
}
