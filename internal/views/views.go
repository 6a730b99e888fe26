// Package views строит проекции коллекции заметок для отображения:
// поиск, фильтр по тегу, разделение на закрепленные и секции напоминаний.
// Функции пакета не хранят состояния и не изменяют входной срез.
package views

import (
	"strings"

	"devnotes/internal/model"
)

// Query - эфемерное состояние экрана списка заметок
type Query struct {
	Search string // подстрока для поиска, пустая строка - без фильтра
	Tag    string // имя выбранного тега, пустая строка - все теги
}

// HomeView - результат для главного экрана
type HomeView struct {
	Pinned    []model.Note
	Unpinned  []model.Note
	Empty     bool // заметок нет совсем
	NoResults bool // заметки есть, но фильтр ничего не нашел
}

// Search оставляет заметки, у которых заголовок или содержимое содержит q без учета регистра
func Search(notes []model.Note, q string) []model.Note {
	if q == "" {
		return copyNotes(notes)
	}
	needle := strings.ToLower(q)

	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Content), needle) {
			out = append(out, n)
		}
	}
	return out
}

// ByTag оставляет заметки, у которых имя тега в снимке совпадает с tagName.
// Сравнивается имя, а не ID: после переименования старые снимки не совпадут.
func ByTag(notes []model.Note, tagName string) []model.Note {
	if tagName == "" {
		return copyNotes(notes)
	}

	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if n.Tag != nil && n.Tag.Name == tagName {
			out = append(out, n)
		}
	}
	return out
}

// SplitPinned делит заметки на закрепленные и остальные с сохранением порядка
func SplitPinned(notes []model.Note) (pinned, unpinned []model.Note) {
	pinned = make([]model.Note, 0)
	unpinned = make([]model.Note, 0)
	for _, n := range notes {
		if n.IsPinned {
			pinned = append(pinned, n)
		} else {
			unpinned = append(unpinned, n)
		}
	}
	return pinned, unpinned
}

// PinnedOnly - вкладка закрепленных: только закрепленные заметки с учетом поиска
func PinnedOnly(notes []model.Note, q string) []model.Note {
	pinned, _ := SplitPinned(Search(notes, q))
	return pinned
}

// Home применяет поиск, затем фильтр по тегу, затем делит результат на две группы
func Home(notes []model.Note, q Query) HomeView {
	filtered := ByTag(Search(notes, q.Search), q.Tag)
	pinned, unpinned := SplitPinned(filtered)

	return HomeView{
		Pinned:    pinned,
		Unpinned:  unpinned,
		Empty:     len(notes) == 0,
		NoResults: len(notes) > 0 && len(filtered) == 0,
	}
}

func copyNotes(notes []model.Note) []model.Note {
	out := make([]model.Note, len(notes))
	copy(out, notes)
	return out
}
