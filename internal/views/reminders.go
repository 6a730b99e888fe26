package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"devnotes/internal/clock"
	"devnotes/internal/model"
)

// ReminderFilter - режим экрана напоминаний
type ReminderFilter string

const (
	FilterAll      ReminderFilter = "all"
	FilterOverdue  ReminderFilter = "overdue"
	FilterUpcoming ReminderFilter = "upcoming"
)

// ParseReminderFilter разбирает значение фильтра, пустая строка означает FilterAll
func ParseReminderFilter(s string) (ReminderFilter, error) {
	switch f := ReminderFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterOverdue, FilterUpcoming:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown reminder filter %q", model.ErrValidation, s)
	}
}

// Section - секция напоминания относительно текущего момента
type Section int

// Порядок констант совпадает с порядком секций на экране
const (
	SectionOverdue Section = iota
	SectionToday
	SectionTomorrow
	SectionUpcoming
)

// Sections - все секции в порядке отображения
var Sections = []Section{SectionOverdue, SectionToday, SectionTomorrow, SectionUpcoming}

func (s Section) String() string {
	switch s {
	case SectionOverdue:
		return "overdue"
	case SectionToday:
		return "today"
	case SectionTomorrow:
		return "tomorrow"
	case SectionUpcoming:
		return "upcoming"
	default:
		return fmt.Sprintf("section(%d)", int(s))
	}
}

// RelativeLabel возвращает заголовок секции для пользователя
func RelativeLabel(s Section) string {
	switch s {
	case SectionOverdue:
		return "Overdue"
	case SectionToday:
		return "Today"
	case SectionTomorrow:
		return "Tomorrow"
	default:
		return "Upcoming"
	}
}

// SectionOf определяет секцию для времени d. Календарные дни считаются в зоне now.
// Сегодняшнее время в прошлом попадает в SectionToday, а не в SectionOverdue.
func SectionOf(d, now time.Time) Section {
	switch {
	case clock.SameDay(d, now):
		return SectionToday
	case clock.IsTomorrow(d, now):
		return SectionTomorrow
	case d.Before(now):
		return SectionOverdue
	default:
		return SectionUpcoming
	}
}

// ReminderGroup - секция со своими заметками
type ReminderGroup struct {
	Section Section
	Label   string
	Notes   []model.Note
}

// Reminders возвращает заметки с напоминанием для выбранного фильтра.
// В режиме FilterAll порядок - по секциям, внутри секции по времени;
// в остальных режимах - плоский список по возрастанию времени.
func Reminders(notes []model.Note, filter ReminderFilter, q string, now time.Time) []model.Note {
	startOfToday := clock.StartOfDay(now)

	out := make([]model.Note, 0)
	for _, n := range Search(notes, q) {
		if n.ReminderDate == nil {
			continue
		}
		d := *n.ReminderDate
		switch filter {
		case FilterOverdue:
			if !d.Before(now) {
				continue
			}
		case FilterUpcoming:
			if !d.After(startOfToday) {
				continue
			}
		}
		out = append(out, n)
	}

	if filter == FilterAll || filter == "" {
		sort.SliceStable(out, func(i, j int) bool {
			si, sj := SectionOf(*out[i].ReminderDate, now), SectionOf(*out[j].ReminderDate, now)
			if si != sj {
				return si < sj
			}
			return out[i].ReminderDate.Before(*out[j].ReminderDate)
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReminderDate.Before(*out[j].ReminderDate)
	})
	return out
}

// GroupReminders раскладывает заметки с напоминанием по секциям.
// Пустые секции не возвращаются.
func GroupReminders(notes []model.Note, now time.Time) []ReminderGroup {
	bySection := make(map[Section][]model.Note, len(Sections))
	for _, n := range Reminders(notes, FilterAll, "", now) {
		s := SectionOf(*n.ReminderDate, now)
		bySection[s] = append(bySection[s], n)
	}

	groups := make([]ReminderGroup, 0, len(bySection))
	for _, s := range Sections {
		if len(bySection[s]) == 0 {
			continue
		}
		groups = append(groups, ReminderGroup{
			Section: s,
			Label:   RelativeLabel(s),
			Notes:   bySection[s],
		})
	}
	return groups
}
