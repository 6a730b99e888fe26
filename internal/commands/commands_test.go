package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devnotes/internal/model"
	"devnotes/internal/reminder"
)

// writeTestConfig создает конфиг с sqlite в отдельном каталоге
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`
storage:
  driver: sqlite
  data_dir: %s
  dsn: %s
reminders:
  permission: not-determined
  grant_on_request: true
`, dir, filepath.Join(dir, "notes.db"))

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, configFile string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func addNoteJSON(t *testing.T, cfg string, args ...string) model.Note {
	t.Helper()
	out, err := run(t, cfg, append([]string{"--json", "note", "add"}, args...)...)
	require.NoError(t, err, out)

	var note model.Note
	require.NoError(t, json.Unmarshal([]byte(out), &note), out)
	return note
}

func TestNoteLifecycle(t *testing.T) {
	cfg := writeTestConfig(t)

	note := addNoteJSON(t, cfg, "--title", "Release", "--tag", "İş", "ship", "it")
	assert.Equal(t, "ship it", note.Content)
	require.NotNil(t, note.Tag)
	assert.Equal(t, "İş", note.Tag.Name)

	out, err := run(t, cfg, "note", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Release")

	_, err = run(t, cfg, "note", "pin", note.ID)
	require.NoError(t, err)

	out, err = run(t, cfg, "note", "list", "--pinned")
	require.NoError(t, err)
	assert.Contains(t, out, "Pinned - 1 note")

	_, err = run(t, cfg, "note", "edit", note.ID, "--title", "Released", "--no-tag")
	require.NoError(t, err)

	out, err = run(t, cfg, "note", "show", note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Released\n\nship it\n", out)

	_, err = run(t, cfg, "note", "rm", note.ID)
	require.NoError(t, err)

	out, err = run(t, cfg, "note", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no notes yet")
}

func TestNoteAdd_Validation(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := run(t, cfg, "note", "add")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = run(t, cfg, "note", "add", "--tag", "nope", "text")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = run(t, cfg, "note", "add", "--remind", "tomorrow-ish", "text")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestPurge(t *testing.T) {
	cfg := writeTestConfig(t)
	addNoteJSON(t, cfg, "one")
	addNoteJSON(t, cfg, "two")

	_, err := run(t, cfg, "note", "purge")
	assert.Error(t, err)

	_, err = run(t, cfg, "note", "purge", "--yes")
	require.NoError(t, err)

	out, err := run(t, cfg, "note", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no notes yet")
}

func TestTags(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := run(t, cfg, "tag", "add", "Go", "--color", "TagTeal", "--icon", "terminal.fill")
	require.NoError(t, err)

	_, err = run(t, cfg, "tag", "add", "go")
	assert.ErrorIs(t, err, model.ErrDuplicateTagName)

	note := addNoteJSON(t, cfg, "--tag", "Go", "generics")

	_, err = run(t, cfg, "tag", "rename", "Go", "Golang")
	require.NoError(t, err)

	out, err := run(t, cfg, "tag", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Golang")
	assert.NotContains(t, out, " Go ")

	// снимок в заметке остается прежним
	out, err = run(t, cfg, "--json", "note", "list", "--tag", "Go")
	require.NoError(t, err)
	assert.Contains(t, out, note.ID)

	_, err = run(t, cfg, "tag", "rm", "Golang")
	require.NoError(t, err)
	_, err = run(t, cfg, "tag", "rm", "Golang")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestReminders(t *testing.T) {
	cfg := writeTestConfig(t)
	addNoteJSON(t, cfg, "--title", "Past", "--remind", "2001-01-01 09:00", "x")
	addNoteJSON(t, cfg, "--title", "Future", "--remind", "2999-01-01 09:00", "y")

	out, err := run(t, cfg, "reminders")
	require.NoError(t, err)
	assert.Contains(t, out, "Overdue")
	assert.Contains(t, out, "Upcoming")

	out, err = run(t, cfg, "reminders", "--filter", "overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "Past")
	assert.NotContains(t, out, "Future")

	_, err = run(t, cfg, "reminders", "--filter", "someday")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestNotify(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := run(t, cfg, "notify")
	require.NoError(t, err)
	assert.Contains(t, out, "not-determined")

	out, err = run(t, cfg, "notify", "enable")
	require.NoError(t, err)
	assert.Contains(t, out, "authorized")

	// разрешение и флаг переживают перезапуск
	out, err = run(t, cfg, "--json", "notify")
	require.NoError(t, err)
	var state reminder.State
	require.NoError(t, json.Unmarshal([]byte(out), &state), out)
	assert.Equal(t, reminder.PermissionAuthorized, state.Permission)
	assert.True(t, state.Enabled)

	out, err = run(t, cfg, "notify", "disable")
	require.NoError(t, err)
	assert.Contains(t, out, "off")

	out, err = run(t, cfg, "--json", "notify")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &state), out)
	assert.Equal(t, reminder.PermissionAuthorized, state.Permission)
	assert.False(t, state.Enabled)
}
