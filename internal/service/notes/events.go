package notes

import (
	"context"
	"sync"

	"devnotes/internal/model"
)

// EventKind - тип изменения коллекции заметок
type EventKind int

const (
	// EventSaved - заметка добавлена или перезаписана
	EventSaved EventKind = iota
	// EventPinToggled - изменено только закрепление
	EventPinToggled
	// EventDeleted - заметка удалена
	EventDeleted
	// EventCleared - удалены все заметки
	EventCleared
)

// Event описывает зафиксированное изменение
type Event struct {
	Kind EventKind
	Note model.Note // для EventSaved/EventPinToggled
	IDs  []string   // для EventDeleted/EventCleared
}

// Listener получает события после того, как запись уже зафиксирована в хранилище
type Listener func(ctx context.Context, e Event)

// EventService управляет подписчиками на изменения заметок
type EventService struct {
	listeners map[int]Listener
	nextID    int
	mu        sync.RWMutex
}

// NewEventService создает новый экземпляр EventService
func NewEventService() *EventService {
	return &EventService{
		listeners: make(map[int]Listener),
	}
}

// Subscribe добавляет подписчика и возвращает функцию отписки
func (s *EventService) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Publish синхронно доставляет событие всем подписчикам.
// Синхронная доставка гарантирует, что отмена напоминания не потеряется.
func (s *EventService) Publish(ctx context.Context, e Event) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l(ctx, e)
	}
}
