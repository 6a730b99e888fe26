// Package app собирает хранилища и сервисы по конфигурации (DI):
// Storage → Service → Scheduler. Используется сервером и CLI.
package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"devnotes/internal/clock"
	"devnotes/internal/config"
	"devnotes/internal/reminder"
	"devnotes/internal/repository"
	"devnotes/internal/repository/diskvstore"
	"devnotes/internal/repository/gormstore"
	"devnotes/internal/repository/memory"
	svc "devnotes/internal/service"
	"devnotes/internal/service/notes"
	"devnotes/internal/service/tags"
)

// App - собранные компоненты приложения
type App struct {
	Config    *config.Config
	Clock     clock.Clock
	Events    *notes.EventService
	Notes     svc.NoteService
	Tags      svc.TagService
	Notifier  *reminder.LocalNotifier
	Scheduler *reminder.Scheduler

	db *gorm.DB
}

// New создает хранилища выбранного драйвера и сервисы поверх них.
// cfg берется из config.Load или config.Default.
func New(ctx context.Context, cfg *config.Config, clk clock.Clock) (*App, error) {
	if clk == nil {
		clk = clock.Real{}
	}

	a := &App{Config: cfg, Clock: clk}

	noteRepo, tagStore, settings, err := a.openStorage(cfg.Storage)
	if err != nil {
		return nil, err
	}

	a.Events = notes.NewEventService()
	a.Notes = notes.NewNoteService(noteRepo, a.Events, clk)
	log.Println("Initialized note service")

	a.Tags = tags.NewTagService(tagStore)
	log.Println("Initialized tag service")

	permission, err := reminder.ParsePermission(cfg.Reminders.Permission)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("reminders.permission: %w", err)
	}
	a.Notifier = reminder.NewLocalNotifier(clk, permission, cfg.Reminders.GrantOnRequest, nil)
	if err := a.Notifier.AttachStore(settings); err != nil {
		a.Close()
		return nil, err
	}

	a.Scheduler, err = reminder.NewScheduler(ctx, a.Notifier, settings, clk, cfg.Reminders.NotificationsEnabled)
	if err != nil {
		a.Close()
		return nil, err
	}
	state := a.Scheduler.State()
	log.Printf("Initialized reminder scheduler: permission=%s enabled=%t", state.Permission, state.Enabled)

	return a, nil
}

func (a *App) openStorage(cfg *config.ConfigStorage) (repository.NoteRepository, repository.TagCollectionStore, repository.SettingsStore, error) {
	if cfg.Driver == "memory" {
		log.Println("Initialized in-memory storage (map-based)")
		return memory.NewRepository(), memory.NewTagStore(), memory.NewSettingsStore(), nil
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, nil, repository.Unavailable("create data dir", err)
	}

	db, err := gormstore.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, nil, nil, err
	}
	a.db = db

	noteRepo, err := gormstore.NewRepository(db, cfg.CacheSize)
	if err != nil {
		a.Close()
		return nil, nil, nil, err
	}
	log.Printf("Initialized %s note repository", cfg.Driver)

	store := diskvstore.New(cfg.DataDir)
	log.Printf("Initialized diskv tag/settings store at %s", cfg.DataDir)

	return noteRepo, store, store, nil
}

// Close останавливает таймеры уведомлений и закрывает соединение с базой
func (a *App) Close() error {
	if a.Notifier != nil {
		a.Notifier.StopAll()
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
