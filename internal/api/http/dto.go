package httpapi

import (
	"time"

	"devnotes/internal/model"
	"devnotes/internal/views"
)

// NoteDTO - представление заметки в API
type NoteDTO struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	CreatedAt    time.Time  `json:"created_at"`
	Tag          *model.Tag `json:"tag,omitempty"`
	IsPinned     bool       `json:"is_pinned"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	Section      string     `json:"section,omitempty"`
}

// NoteRequest - тело запросов создания и изменения заметки.
// Тег задается ID; в заметку кладется снимок текущего состояния тега.
// При изменении пустой tag_id оставляет прежний снимок, clear_tag убирает тег.
type NoteRequest struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	TagID        string     `json:"tag_id,omitempty"`
	ClearTag     bool       `json:"clear_tag,omitempty"`
	IsPinned     bool       `json:"is_pinned"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
}

// HomeResponse - главный экран
type HomeResponse struct {
	Pinned    []NoteDTO `json:"pinned"`
	Unpinned  []NoteDTO `json:"unpinned"`
	Empty     bool      `json:"empty"`
	NoResults bool      `json:"no_results"`
}

// NotesResponse - плоский список заметок
type NotesResponse struct {
	Notes []NoteDTO `json:"notes"`
}

// ReminderGroupDTO - секция экрана напоминаний
type ReminderGroupDTO struct {
	Section string    `json:"section"`
	Label   string    `json:"label"`
	Notes   []NoteDTO `json:"notes"`
}

// RemindersResponse - экран напоминаний; группы заполняются только для фильтра all
type RemindersResponse struct {
	Filter string             `json:"filter"`
	Notes  []NoteDTO          `json:"notes"`
	Groups []ReminderGroupDTO `json:"groups,omitempty"`
}

// TagRequest - тело запросов создания и изменения тега
type TagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// TagDTO - тег с числом заметок, чей снимок ссылается на него
type TagDTO struct {
	model.Tag
	LinkedNotesCount int `json:"linked_notes_count"`
}

// TagsResponse - список тегов
type TagsResponse struct {
	Tags []TagDTO `json:"tags"`
}

func toNoteDTO(n model.Note) NoteDTO {
	n = n.Clone()
	return NoteDTO{
		ID:           n.ID,
		Title:        n.Title,
		Content:      n.Content,
		CreatedAt:    n.CreatedAt,
		Tag:          n.Tag,
		IsPinned:     n.IsPinned,
		ReminderDate: n.ReminderDate,
	}
}

func toNoteDTOs(notes []model.Note) []NoteDTO {
	out := make([]NoteDTO, len(notes))
	for i, n := range notes {
		out[i] = toNoteDTO(n)
	}
	return out
}

func toReminderDTOs(notes []model.Note, now time.Time) []NoteDTO {
	out := make([]NoteDTO, len(notes))
	for i, n := range notes {
		out[i] = toNoteDTO(n)
		out[i].Section = views.SectionOf(*n.ReminderDate, now).String()
	}
	return out
}
