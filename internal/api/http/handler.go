// Package httpapi реализует JSON API поверх сервисов заметок, тегов и напоминаний.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"devnotes/internal/clock"
	"devnotes/internal/model"
	"devnotes/internal/reminder"
	svc "devnotes/internal/service"
	"devnotes/internal/service/tags"
	"devnotes/internal/views"
)

// Reminders - управление уведомлениями, реализуется *reminder.Scheduler
type Reminders interface {
	State() reminder.State
	Enable(ctx context.Context) (reminder.State, error)
	Disable(ctx context.Context) (reminder.State, error)
	Activate(ctx context.Context) error
	OpenSettings(ctx context.Context) error
}

var _ Reminders = (*reminder.Scheduler)(nil)

// Handler обрабатывает HTTP запросы API
type Handler struct {
	noteService svc.NoteService
	tagService  svc.TagService
	reminders   Reminders
	clock       clock.Clock
}

// NewHandler создает новый экземпляр HTTP хэндлера
func NewHandler(noteService svc.NoteService, tagService svc.TagService, reminders Reminders, clk clock.Clock) *Handler {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Handler{
		noteService: noteService,
		tagService:  tagService,
		reminders:   reminders,
		clock:       clk,
	}
}

// Register регистрирует маршруты на mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/notes", h.Home)
	mux.HandleFunc("POST /api/v1/notes", h.CreateNote)
	mux.HandleFunc("DELETE /api/v1/notes", h.DeleteAllNotes)
	mux.HandleFunc("GET /api/v1/notes/pinned", h.PinnedNotes)
	mux.HandleFunc("GET /api/v1/notes/{id}", h.GetNote)
	mux.HandleFunc("PUT /api/v1/notes/{id}", h.UpdateNote)
	mux.HandleFunc("DELETE /api/v1/notes/{id}", h.DeleteNote)
	mux.HandleFunc("POST /api/v1/notes/{id}/pin", h.TogglePin)
	mux.HandleFunc("GET /api/v1/notes/{id}/share", h.ShareNote)

	mux.HandleFunc("GET /api/v1/reminders", h.Reminders)

	mux.HandleFunc("GET /api/v1/tags", h.ListTags)
	mux.HandleFunc("POST /api/v1/tags", h.CreateTag)
	mux.HandleFunc("PUT /api/v1/tags/{id}", h.UpdateTag)
	mux.HandleFunc("DELETE /api/v1/tags/{id}", h.DeleteTag)

	mux.HandleFunc("GET /api/v1/notifications", h.NotificationState)
	mux.HandleFunc("POST /api/v1/notifications/enable", h.EnableNotifications)
	mux.HandleFunc("POST /api/v1/notifications/disable", h.DisableNotifications)
	mux.HandleFunc("POST /api/v1/notifications/activate", h.ActivateNotifications)
	mux.HandleFunc("POST /api/v1/notifications/settings", h.OpenNotificationSettings)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Home возвращает главный экран: поиск ?q=, фильтр по имени тега ?tag=
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.Fetch(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	v := views.Home(notes, views.Query{
		Search: r.URL.Query().Get("q"),
		Tag:    r.URL.Query().Get("tag"),
	})
	writeJSON(w, http.StatusOK, HomeResponse{
		Pinned:    toNoteDTOs(v.Pinned),
		Unpinned:  toNoteDTOs(v.Unpinned),
		Empty:     v.Empty,
		NoResults: v.NoResults,
	})
}

// PinnedNotes возвращает вкладку закрепленных с учетом поиска
func (h *Handler) PinnedNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.Fetch(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	pinned := views.PinnedOnly(notes, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, NotesResponse{Notes: toNoteDTOs(pinned)})
}

// GetNote возвращает заметку по ID
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.noteService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteDTO(note))
}

// ShareNote возвращает текст для отправки заметки
func (h *Handler) ShareNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.noteService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(note.ShareText()))
}

// CreateNote создает заметку
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	note, err := h.applyRequest(model.Note{}, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	created, err := h.noteService.Add(r.Context(), note)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNoteDTO(created))
}

// UpdateNote полностью перезаписывает заметку, сохраняя ID и дату создания
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	existing, err := h.noteService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	note, err := h.applyRequest(existing, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := h.noteService.Update(r.Context(), note); err != nil {
		handleError(w, r, err)
		return
	}

	// заметку могли удалить между чтением и записью, тогда Update ничего не сохранил
	saved, err := h.noteService.Get(r.Context(), note.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteDTO(saved))
}

// TogglePin переключает закрепление; для отсутствующей заметки ничего не делает
func (h *Handler) TogglePin(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.noteService.TogglePin(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	note, err := h.noteService.Get(r.Context(), id)
	if err != nil {
		// заметки нет: операция уже отработала как no-op
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toNoteDTO(note))
}

// DeleteNote удаляет заметку
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.noteService.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllNotes удаляет все заметки
func (h *Handler) DeleteAllNotes(w http.ResponseWriter, r *http.Request) {
	if err := h.noteService.DeleteAll(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reminders возвращает экран напоминаний: ?filter=all|overdue|upcoming, ?q=
func (h *Handler) Reminders(w http.ResponseWriter, r *http.Request) {
	filter, err := views.ParseReminderFilter(r.URL.Query().Get("filter"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	notes, err := h.noteService.Fetch(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	now := h.clock.Now()
	q := r.URL.Query().Get("q")
	selected := views.Reminders(notes, filter, q, now)

	resp := RemindersResponse{
		Filter: string(filter),
		Notes:  toReminderDTOs(selected, now),
	}
	if filter == views.FilterAll {
		for _, g := range views.GroupReminders(selected, now) {
			resp.Groups = append(resp.Groups, ReminderGroupDTO{
				Section: g.Section.String(),
				Label:   g.Label,
				Notes:   toReminderDTOs(g.Notes, now),
			})
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListTags возвращает теги с количеством связанных заметок
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.Fetch(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	list := h.tagService.List()
	out := make([]TagDTO, len(list))
	for i, t := range list {
		out[i] = TagDTO{Tag: t, LinkedNotesCount: tags.LinkedNotesCount(t.ID, notes)}
	}
	writeJSON(w, http.StatusOK, TagsResponse{Tags: out})
}

// CreateTag создает тег с проверкой имени и палитры
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	tag, err := h.tagService.Create(req.Name, req.Color, req.Icon)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

// UpdateTag переименовывает тег или меняет его цвет и иконку.
// Снимки в существующих заметках не меняются.
func (h *Handler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	id := r.PathValue("id")
	if _, ok := h.tagService.Get(id); !ok {
		handleError(w, r, fmt.Errorf("tag %s: %w", id, errNotFound))
		return
	}

	tag := model.Tag{ID: id, Name: strings.TrimSpace(req.Name), Color: req.Color, Icon: req.Icon}
	if err := h.tagService.Edit(tag); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

// DeleteTag удаляет тег; заметки сохраняют свои снимки
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := h.tagService.Delete(r.PathValue("id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NotificationState возвращает состояние уведомлений
func (h *Handler) NotificationState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reminders.State())
}

// EnableNotifications включает уведомления, при необходимости запрашивая разрешение
func (h *Handler) EnableNotifications(w http.ResponseWriter, r *http.Request) {
	state, err := h.reminders.Enable(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// DisableNotifications выключает уведомления
func (h *Handler) DisableNotifications(w http.ResponseWriter, r *http.Request) {
	state, err := h.reminders.Disable(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// ActivateNotifications сверяет состояние с разрешением ОС (событие активации приложения)
func (h *Handler) ActivateNotifications(w http.ResponseWriter, r *http.Request) {
	if err := h.reminders.Activate(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.reminders.State())
}

// OpenNotificationSettings открывает системные настройки уведомлений
func (h *Handler) OpenNotificationSettings(w http.ResponseWriter, r *http.Request) {
	if err := h.reminders.OpenSettings(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// applyRequest переносит поля запроса в заметку и делает снимок выбранного тега.
// Снимок удаленного тега остается в заметке, пока его не заменят или не уберут.
func (h *Handler) applyRequest(note model.Note, req NoteRequest) (model.Note, error) {
	note.Title = req.Title
	note.Content = req.Content
	note.IsPinned = req.IsPinned
	note.ReminderDate = req.ReminderDate

	switch {
	case req.ClearTag:
		note.Tag = nil
	case req.TagID == "":
	default:
		if tag, ok := h.tagService.Get(req.TagID); ok {
			note.Tag = &tag
			break
		}
		if note.Tag != nil && note.Tag.ID == req.TagID {
			break
		}
		return model.Note{}, fmt.Errorf("%w: unknown tag %s", model.ErrValidation, req.TagID)
	}
	return note, nil
}
