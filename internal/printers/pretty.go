// Package printers выводит заметки, теги и напоминания в терминал.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"devnotes/internal/model"
	"devnotes/internal/reminder"
	"devnotes/internal/service/tags"
	"devnotes/internal/views"
)

const timeLayout = "2006-01-02 15:04"

// maxPreview - сколько символов содержимого показывать в таблице
const maxPreview = 40

// PrettyPrint печатает цветные таблицы
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

// New создает PrettyPrint, пишущий в color.Output
func New(showID bool) *PrettyPrint {
	return &PrettyPrint{Out: color.Output, ShowID: showID}
}

// JSON печатает значение в виде JSON с отступами
func (pp *PrettyPrint) JSON(v any) error {
	enc := json.NewEncoder(pp.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Title печатает заголовок с количеством записей
func (pp *PrettyPrint) Title(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.Out, title)
	switch count {
	case 1:
		_, _ = c.Fprintf(pp.Out, " - %d note\n", count)
	default:
		_, _ = c.Fprintf(pp.Out, " - %d notes\n", count)
	}
}

// Home печатает главный экран: закрепленные, затем остальные
func (pp *PrettyPrint) Home(v views.HomeView) {
	switch {
	case v.Empty:
		pp.none("no notes yet")
		return
	case v.NoResults:
		pp.none("nothing matches")
		return
	}

	if len(v.Pinned) > 0 {
		pp.Title("Pinned", len(v.Pinned))
		pp.Notes(v.Pinned)
	}
	pp.Title("Notes", len(v.Unpinned))
	pp.Notes(v.Unpinned)
}

// Notes печатает таблицу заметок
func (pp *PrettyPrint) Notes(notes []model.Note) {
	if len(notes) == 0 {
		pp.none("none")
		return
	}

	faint := color.New(color.Faint)
	pin := color.New(color.FgHiYellow)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, n := range notes {
		row := make([]any, 0, 6)
		if pp.ShowID {
			row = append(row, faint.Sprint(n.ID))
		}
		marker := " "
		if n.IsPinned {
			marker = pin.Sprint("*")
		}
		row = append(row, marker, title(n), tagLabel(n.Tag), preview(n.Content), reminderLabel(n.ReminderDate))
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	_, _ = fmt.Fprintln(pp.Out)
}

// Reminders печатает напоминания: по секциям или плоским списком
func (pp *PrettyPrint) Reminders(notes []model.Note, filter views.ReminderFilter, now time.Time) {
	if len(notes) == 0 {
		pp.none("no reminders")
		return
	}

	if filter != views.FilterAll {
		pp.Title(strings.ToUpper(string(filter[:1]))+string(filter[1:]), len(notes))
		pp.reminderTable(notes, now)
		return
	}

	for _, g := range views.GroupReminders(notes, now) {
		pp.Title(g.Label, len(g.Notes))
		pp.reminderTable(g.Notes, now)
	}
}

func (pp *PrettyPrint) reminderTable(notes []model.Note, now time.Time) {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, n := range notes {
		section := views.SectionOf(*n.ReminderDate, now)
		when := sectionColor(section).Sprint(n.ReminderDate.In(now.Location()).Format(timeLayout))
		row := []any{when, title(n), tagLabel(n.Tag)}
		if pp.ShowID {
			row = append([]any{color.New(color.Faint).Sprint(n.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	_, _ = fmt.Fprintln(pp.Out)
}

// Tags печатает теги с количеством связанных заметок
func (pp *PrettyPrint) Tags(list []model.Tag, notes []model.Note) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []any{bold.Sprint("Name"), bold.Sprint("Color"), bold.Sprint("Icon"), bold.Sprint("Notes")}
	if pp.ShowID {
		header = append([]any{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	for _, t := range list {
		row := []any{t.Name, t.Color, t.Icon, tags.LinkedNotesCount(t.ID, notes)}
		if pp.ShowID {
			row = append([]any{t.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
}

// State печатает состояние уведомлений
func (pp *PrettyPrint) State(s reminder.State) {
	tbl := uitable.New()
	tbl.Separator = "  "

	enabled := color.New(color.FgRed).Sprint("off")
	if s.Enabled {
		enabled = color.New(color.FgGreen).Sprint("on")
	}
	tbl.AddRow("Notifications", enabled)
	tbl.AddRow("Permission", permissionColor(s.Permission).Sprint(s.Permission.String()))
	_, _ = fmt.Fprintln(pp.Out, tbl)

	if s.ShowSettings {
		_, _ = color.New(color.FgHiYellow).Fprintln(pp.Out, "Notifications are blocked by the system. Allow them in system settings.")
	}
}

func (pp *PrettyPrint) none(msg string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.Out, " %s\n\n", msg)
}

func title(n model.Note) string {
	if strings.TrimSpace(n.Title) == "" {
		return color.New(color.Faint, color.Italic).Sprint("(untitled)")
	}
	return n.Title
}

func tagLabel(t *model.Tag) string {
	if t == nil {
		return ""
	}
	return tagColor(t.Color).Sprint("#" + t.Name)
}

func preview(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	r := []rune(content)
	if len(r) > maxPreview {
		return string(r[:maxPreview-1]) + "…"
	}
	return content
}

func reminderLabel(d *time.Time) string {
	if d == nil {
		return ""
	}
	return color.New(color.FgCyan).Sprint("⏰ " + d.Local().Format(timeLayout))
}

func sectionColor(s views.Section) *color.Color {
	switch s {
	case views.SectionOverdue:
		return color.New(color.FgRed)
	case views.SectionToday:
		return color.New(color.FgGreen)
	case views.SectionTomorrow:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgWhite)
	}
}

func permissionColor(p reminder.Permission) *color.Color {
	switch {
	case p.Allows():
		return color.New(color.FgGreen)
	case p == reminder.PermissionDenied:
		return color.New(color.FgRed)
	default:
		return color.New(color.Faint)
	}
}

// tagColor подбирает цвет терминала для токена палитры
func tagColor(token string) *color.Color {
	switch token {
	case "TagBlue", "TagIndigo":
		return color.New(color.FgBlue)
	case "TagGreen", "TagMint":
		return color.New(color.FgGreen)
	case "TagPurple", "TagPink":
		return color.New(color.FgMagenta)
	case "TagOrange", "TagYellow", "TagBrown":
		return color.New(color.FgYellow)
	case "TagRed":
		return color.New(color.FgRed)
	case "TagTeal", "TagCyan":
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgWhite)
	}
}
