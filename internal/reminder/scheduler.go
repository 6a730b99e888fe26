// Package reminder связывает даты напоминаний заметок с уведомлениями ОС
// и ведет автомат состояний разрешения на уведомления.
package reminder

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"devnotes/internal/clock"
	"devnotes/internal/model"
	"devnotes/internal/repository"
	"devnotes/internal/service/notes"
)

// State - наблюдаемое состояние планировщика
type State struct {
	Permission   Permission `json:"permission"`
	Enabled      bool       `json:"enabled"`
	ShowSettings bool       `json:"show_settings"` // показать переход в системные настройки
}

// Scheduler планирует и снимает уведомления по событиям заметок.
// Флаг Enabled может быть true только при разрешающем статусе.
type Scheduler struct {
	mu       sync.Mutex
	notifier Notifier
	settings repository.SettingsStore
	clock    clock.Clock

	permission   Permission
	enabled      bool
	showSettings bool
	scheduled    map[string]time.Time
}

// NewScheduler создает планировщик и читает сохраненный флаг.
// defaultEnabled используется, если флаг еще не сохранялся.
func NewScheduler(ctx context.Context, notifier Notifier, settings repository.SettingsStore, clk clock.Clock, defaultEnabled bool) (*Scheduler, error) {
	if clk == nil {
		clk = clock.Real{}
	}

	enabled, ok, err := settings.NotificationsEnabled()
	if err != nil {
		return nil, fmt.Errorf("load notification settings: %w", err)
	}
	if !ok {
		enabled = defaultEnabled
	}

	s := &Scheduler{
		notifier:  notifier,
		settings:  settings,
		clock:     clk,
		enabled:   enabled,
		scheduled: make(map[string]time.Time),
	}

	if err := s.Activate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// State возвращает текущее состояние
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Enable обрабатывает включение уведомлений пользователем
func (s *Scheduler) Enable(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.notifier.PermissionStatus(ctx)
	if err != nil {
		return s.stateLocked(), fmt.Errorf("permission status: %w", err)
	}

	switch {
	case status.Allows():
		s.permission = status
		s.showSettings = false
		return s.setEnabledLocked(true)

	case status == PermissionNotDetermined:
		granted, err := s.notifier.RequestPermission(ctx)
		if err != nil {
			return s.stateLocked(), fmt.Errorf("request permission: %w", err)
		}
		if granted {
			s.permission = PermissionAuthorized
			if current, err := s.notifier.PermissionStatus(ctx); err == nil && current.Allows() {
				s.permission = current
			}
			s.showSettings = false
			log.Println("[Reminders] Permission granted, notifications enabled")
			return s.setEnabledLocked(true)
		}
		log.Println("[Reminders] Permission denied by user")
		s.permission = PermissionDenied
		s.showSettings = true
		return s.setEnabledLocked(false)

	default:
		// повторный запрос после отказа ОС не покажет
		s.permission = status
		s.showSettings = true
		return s.setEnabledLocked(false)
	}
}

// Disable выключает уведомления на уровне приложения, не трогая разрешение ОС
func (s *Scheduler) Disable(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.showSettings = false
	return s.setEnabledLocked(false)
}

// Activate сверяет состояние с ОС; вызывается при каждой активации приложения.
// Отказ в разрешении принудительно выключает флаг.
func (s *Scheduler) Activate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.notifier.PermissionStatus(ctx)
	if err != nil {
		return fmt.Errorf("permission status: %w", err)
	}
	s.permission = status

	switch {
	case status == PermissionDenied:
		s.showSettings = true
		if s.enabled {
			log.Println("[Reminders] Permission denied by system, disabling notifications")
		}
		_, err = s.setEnabledLocked(false)
		return err
	case status == PermissionNotDetermined && s.enabled:
		// разрешение еще не запрашивалось, флаг не может быть включен
		_, err = s.setEnabledLocked(false)
		return err
	case status.Allows():
		s.showSettings = false
	}
	return nil
}

// OpenSettings открывает системные настройки уведомлений
func (s *Scheduler) OpenSettings(ctx context.Context) error {
	return s.notifier.OpenSystemSettings(ctx)
}

// NoteSaved планирует уведомление для будущей даты напоминания или снимает его.
// При выключенных уведомлениях напоминание остается спящим.
func (s *Scheduler) NoteSaved(ctx context.Context, note model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if note.ReminderDate == nil || note.ReminderDate.Before(s.clock.Now()) {
		return s.cancelLocked(ctx, note.ID)
	}
	if !s.enabled || !s.permission.Allows() {
		return s.cancelLocked(ctx, note.ID)
	}

	at := *note.ReminderDate
	if err := s.notifier.ScheduleAlert(ctx, note.ID, note.Title, note.Content, at); err != nil {
		log.Printf("[Reminders] schedule %s: %v", note.ID, err)
		return err
	}
	s.scheduled[note.ID] = at
	return nil
}

// NoteDeleted снимает уведомление удаленной заметки
func (s *Scheduler) NoteDeleted(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(ctx, id)
}

// NotesCleared снимает уведомления всех удаленных заметок
func (s *Scheduler) NotesCleared(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, id := range ids {
		if err := s.cancelLocked(ctx, id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// IsScheduled сообщает, есть ли у заметки запланированное уведомление
func (s *Scheduler) IsScheduled(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.scheduled[id]
	return ok
}

// HandleEvent - подписчик на события сервиса заметок
func (s *Scheduler) HandleEvent(ctx context.Context, e notes.Event) {
	var err error
	switch e.Kind {
	case notes.EventSaved:
		err = s.NoteSaved(ctx, e.Note)
	case notes.EventDeleted:
		err = s.NoteDeleted(ctx, firstID(e.IDs))
	case notes.EventCleared:
		err = s.NotesCleared(ctx, e.IDs)
	case notes.EventPinToggled:
		// закрепление не влияет на напоминание
	}
	if err != nil {
		log.Printf("[Reminders] event %d: %v", e.Kind, err)
	}
}

// Subscribe подписывает планировщик на события сервиса заметок
func (s *Scheduler) Subscribe(events *notes.EventService) (unsubscribe func()) {
	return events.Subscribe(s.HandleEvent)
}

// Reconcile периодически сверяет разрешение с ОС, пока не отменен ctx.
// interval <= 0 отключает периодическую сверку.
func (s *Scheduler) Reconcile(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	log.Printf("[Reminders] Scheduler started (reconcile every %v)", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[Reminders] Scheduler stopped")
			return nil
		case <-ticker.C:
			if err := s.Activate(ctx); err != nil {
				log.Printf("[Reminders] reconcile: %v", err)
			}
		}
	}
}

func (s *Scheduler) stateLocked() State {
	return State{
		Permission:   s.permission,
		Enabled:      s.enabled,
		ShowSettings: s.showSettings,
	}
}

// setEnabledLocked меняет и сохраняет флаг; при выключении снимает все уведомления
func (s *Scheduler) setEnabledLocked(enabled bool) (State, error) {
	changed := s.enabled != enabled
	s.enabled = enabled

	if !enabled {
		for id := range s.scheduled {
			if err := s.notifier.CancelAlert(context.Background(), id); err != nil {
				log.Printf("[Reminders] cancel %s: %v", id, err)
			}
			delete(s.scheduled, id)
		}
	}

	if changed {
		if err := s.settings.SetNotificationsEnabled(enabled); err != nil {
			log.Printf("[Reminders] persist enabled=%t: %v", enabled, err)
			return s.stateLocked(), err
		}
	}
	return s.stateLocked(), nil
}

func (s *Scheduler) cancelLocked(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(s.scheduled, id)
	if err := s.notifier.CancelAlert(ctx, id); err != nil {
		log.Printf("[Reminders] cancel %s: %v", id, err)
		return err
	}
	return nil
}

func firstID(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
