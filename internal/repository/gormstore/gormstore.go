// Package gormstore хранит заметки в SQL-базе через gorm.
// Снимок тега лежит в отдельной колонке как JSON-блоб и восстанавливается побайтно.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"devnotes/internal/model"
	"devnotes/internal/repository"
)

// DefaultCacheSize - размер LRU-зеркала заметок по умолчанию
const DefaultCacheSize = 1000

var _ repository.NoteRepository = (*repo)(nil)

// noteRecord - строка таблицы notes
type noteRecord struct {
	ID           string     `gorm:"primaryKey;size:36"`
	Title        string     `gorm:"type:text"`
	Content      string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"index;not null"`
	TagData      []byte     `gorm:"column:tag_data"`
	IsPinned     bool       `gorm:"index;not null"`
	ReminderDate *time.Time `gorm:"index"`
}

// TableName - имя таблицы в базе
func (noteRecord) TableName() string {
	return "notes"
}

// Open подключается к базе выбранного драйвера
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, repository.Unavailable("gorm.Open", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, repository.Unavailable("db.DB", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, repository.Unavailable("ping", err)
	}

	return db, nil
}

type repo struct {
	db    *gorm.DB
	cache *lru.Cache[string, model.Note]
}

// NewRepository мигрирует схему и возвращает репозиторий поверх db.
// Прочитанные заметки зеркалируются в LRU-кэш по ID.
func NewRepository(db *gorm.DB, cacheSize int) (repository.NoteRepository, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, model.Note](cacheSize)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&noteRecord{}); err != nil {
		return nil, repository.Unavailable("AutoMigrate", err)
	}
	log.Println("[Storage] notes table migrated")

	return &repo{db: db, cache: cache}, nil
}

// Insert сохраняет новую заметку
func (r *repo) Insert(ctx context.Context, note model.Note) error {
	rec, err := toRecord(note)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return repository.Unavailable("insert note", err)
	}
	r.cache.Add(note.ID, note.Clone())
	return nil
}

// Update перезаписывает все изменяемые поля заметки
func (r *repo) Update(ctx context.Context, note model.Note) (bool, error) {
	exists, err := r.exists(ctx, note.ID)
	if err != nil || !exists {
		return false, err
	}

	rec, err := toRecord(note)
	if err != nil {
		return false, err
	}

	// map, а не struct: gorm пропускает нулевые поля структуры
	err = r.db.WithContext(ctx).Model(&noteRecord{}).Where("id = ?", note.ID).Updates(map[string]any{
		"title":         rec.Title,
		"content":       rec.Content,
		"created_at":    rec.CreatedAt,
		"tag_data":      rec.TagData,
		"is_pinned":     rec.IsPinned,
		"reminder_date": rec.ReminderDate,
	}).Error
	if err != nil {
		r.cache.Remove(note.ID)
		return false, repository.Unavailable("update note", err)
	}

	r.cache.Add(note.ID, note.Clone())
	return true, nil
}

// Delete удаляет заметку по ID
func (r *repo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&noteRecord{})
	r.cache.Remove(id)
	if res.Error != nil {
		return false, repository.Unavailable("delete note", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll удаляет все заметки в транзакции и очищает кэш
func (r *repo) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&noteRecord{}).Error
	})
	// кэш сбрасывается в любом случае: следующее чтение пойдет в базу
	r.cache.Purge()
	if err != nil {
		return repository.Unavailable("delete all notes", err)
	}
	return nil
}

// FindByID возвращает заметку из кэша или из базы
func (r *repo) FindByID(ctx context.Context, id string) (model.Note, error) {
	if note, ok := r.cache.Get(id); ok {
		return note.Clone(), nil
	}

	var rec noteRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Note{}, repository.ErrNoteNotFound
	}
	if err != nil {
		return model.Note{}, repository.Unavailable("find note", err)
	}

	note := fromRecord(rec)
	r.cache.Add(id, note.Clone())
	return note, nil
}

// List выполняет полный просмотр с сортировкой is_pinned DESC, created_at DESC
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	var records []noteRecord
	err := r.db.WithContext(ctx).
		Order("is_pinned DESC").
		Order("created_at DESC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, repository.Unavailable("list notes", err)
	}

	notes := make([]model.Note, 0, len(records))
	for _, rec := range records {
		note := fromRecord(rec)
		r.cache.Add(note.ID, note.Clone())
		notes = append(notes, note)
	}
	return notes, nil
}

func (r *repo) exists(ctx context.Context, id string) (bool, error) {
	if r.cache.Contains(id) {
		return true, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&noteRecord{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, repository.Unavailable("count note", err)
	}
	return count > 0, nil
}

func toRecord(note model.Note) (noteRecord, error) {
	rec := noteRecord{
		ID:           note.ID,
		Title:        note.Title,
		Content:      note.Content,
		CreatedAt:    note.CreatedAt,
		IsPinned:     note.IsPinned,
		ReminderDate: note.ReminderDate,
	}
	if note.Tag != nil {
		data, err := json.Marshal(note.Tag)
		if err != nil {
			return noteRecord{}, fmt.Errorf("encode tag snapshot: %w", err)
		}
		rec.TagData = data
	}
	return rec, nil
}

func fromRecord(rec noteRecord) model.Note {
	note := model.Note{
		ID:           rec.ID,
		Title:        rec.Title,
		Content:      rec.Content,
		CreatedAt:    rec.CreatedAt,
		IsPinned:     rec.IsPinned,
		ReminderDate: rec.ReminderDate,
	}
	if len(rec.TagData) > 0 {
		var tag model.Tag
		if err := json.Unmarshal(rec.TagData, &tag); err != nil {
			// битый снимок не ломает выборку: заметка показывается без тега
			log.Printf("[Storage] note %s: decode tag snapshot: %v", rec.ID, err)
		} else {
			note.Tag = &tag
		}
	}
	return note
}
