package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devnotes/internal/clock"
	"devnotes/internal/model"
	"devnotes/internal/repository"
	"devnotes/internal/repository/memory"
	"devnotes/internal/service/notes"
)

// mockNotifier - мок Notifier с функциями-полями
type mockNotifier struct {
	RequestPermissionFunc func(ctx context.Context) (bool, error)
	PermissionStatusFunc  func(ctx context.Context) (Permission, error)
	ScheduleAlertFunc     func(ctx context.Context, id, title, body string, at time.Time) error
	CancelAlertFunc       func(ctx context.Context, id string) error
	requests              int
}

func (m *mockNotifier) RequestPermission(ctx context.Context) (bool, error) {
	m.requests++
	if m.RequestPermissionFunc != nil {
		return m.RequestPermissionFunc(ctx)
	}
	return false, nil
}

func (m *mockNotifier) PermissionStatus(ctx context.Context) (Permission, error) {
	if m.PermissionStatusFunc != nil {
		return m.PermissionStatusFunc(ctx)
	}
	return PermissionNotDetermined, nil
}

func (m *mockNotifier) ScheduleAlert(ctx context.Context, id, title, body string, at time.Time) error {
	if m.ScheduleAlertFunc != nil {
		return m.ScheduleAlertFunc(ctx, id, title, body, at)
	}
	return nil
}

func (m *mockNotifier) CancelAlert(ctx context.Context, id string) error {
	if m.CancelAlertFunc != nil {
		return m.CancelAlertFunc(ctx, id)
	}
	return nil
}

func (m *mockNotifier) OpenSystemSettings(ctx context.Context) error { return nil }

var _ Notifier = (*mockNotifier)(nil)

// failingSettings - хранилище настроек, которое не может записать флаг
type failingSettings struct {
	memory.SettingsStore
}

func (f *failingSettings) SetNotificationsEnabled(bool) error {
	return repository.Unavailable("save settings", errors.New("read-only"))
}

func future(clk *clock.Fixed, d time.Duration) *time.Time {
	t := clk.Now().Add(d)
	return &t
}

type fixture struct {
	notifier  *LocalNotifier
	settings  *memory.SettingsStore
	clock     *clock.Fixed
	scheduler *Scheduler
}

func newFixture(t *testing.T, permission Permission, grant bool, enabled bool) *fixture {
	t.Helper()
	f := &fixture{
		settings: memory.NewSettingsStore(),
		clock:    &clock.Fixed{T: time.Now()},
	}
	f.notifier = NewLocalNotifier(f.clock, permission, grant, func(Alert) {})
	t.Cleanup(f.notifier.StopAll)

	if enabled {
		require.NoError(t, f.settings.SetNotificationsEnabled(true))
	}

	s, err := NewScheduler(context.Background(), f.notifier, f.settings, f.clock, false)
	require.NoError(t, err)
	f.scheduler = s
	return f
}

func TestScheduler_EnableFromNotDetermined_Granted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, PermissionNotDetermined, true, false)

	note := model.Note{ID: "n1", Title: "Call", ReminderDate: future(f.clock, time.Hour)}

	// уведомления выключены: напоминание спит
	require.NoError(t, f.scheduler.NoteSaved(ctx, note))
	assert.False(t, f.notifier.Has("n1"))

	state, err := f.scheduler.Enable(ctx)
	require.NoError(t, err)
	assert.True(t, state.Enabled)
	assert.Equal(t, PermissionAuthorized, state.Permission)
	assert.False(t, state.ShowSettings)

	// без повторного сохранения задним числом ничего не планируется
	assert.False(t, f.notifier.Has("n1"))

	require.NoError(t, f.scheduler.NoteSaved(ctx, note))
	assert.True(t, f.notifier.Has("n1"))
	assert.True(t, f.scheduler.IsScheduled("n1"))

	enabled, ok, err := f.settings.NotificationsEnabled()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, enabled)
}

func TestScheduler_EnableFromNotDetermined_Denied(t *testing.T) {
	f := newFixture(t, PermissionNotDetermined, false, false)

	state, err := f.scheduler.Enable(context.Background())
	require.NoError(t, err)
	assert.False(t, state.Enabled)
	assert.Equal(t, PermissionDenied, state.Permission)
	assert.True(t, state.ShowSettings)
}

func TestScheduler_EnableWhenDenied_DoesNotRequestAgain(t *testing.T) {
	ctx := context.Background()
	m := &mockNotifier{
		PermissionStatusFunc: func(ctx context.Context) (Permission, error) { return PermissionDenied, nil },
	}
	s, err := NewScheduler(ctx, m, memory.NewSettingsStore(), nil, false)
	require.NoError(t, err)

	state, err := s.Enable(ctx)
	require.NoError(t, err)
	assert.False(t, state.Enabled)
	assert.True(t, state.ShowSettings)
	assert.Equal(t, 0, m.requests)
}

func TestScheduler_EnableWhenProvisional(t *testing.T) {
	f := newFixture(t, PermissionProvisional, false, false)

	state, err := f.scheduler.Enable(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Enabled)
	assert.Equal(t, PermissionProvisional, state.Permission)
}

func TestScheduler_ActivateDeniedForcesDisabled(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, PermissionAuthorized, true, true)
	require.True(t, f.scheduler.State().Enabled)

	require.NoError(t, f.scheduler.NoteSaved(ctx, model.Note{ID: "n1", Title: "x", ReminderDate: future(f.clock, time.Hour)}))
	require.True(t, f.notifier.Has("n1"))

	require.NoError(t, f.notifier.SetPermission(PermissionDenied))
	require.NoError(t, f.scheduler.Activate(ctx))

	state := f.scheduler.State()
	assert.False(t, state.Enabled)
	assert.True(t, state.ShowSettings)
	assert.Equal(t, PermissionDenied, state.Permission)
	assert.False(t, f.notifier.Has("n1"))

	enabled, _, _ := f.settings.NotificationsEnabled()
	assert.False(t, enabled)
}

func TestScheduler_StartupWithDeniedPermission(t *testing.T) {
	f := newFixture(t, PermissionDenied, false, true)

	state := f.scheduler.State()
	assert.False(t, state.Enabled)
	assert.True(t, state.ShowSettings)
}

func TestScheduler_DisableKeepsPermission(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, PermissionAuthorized, true, true)

	require.NoError(t, f.scheduler.NoteSaved(ctx, model.Note{ID: "n1", Title: "x", ReminderDate: future(f.clock, time.Hour)}))

	state, err := f.scheduler.Disable(ctx)
	require.NoError(t, err)
	assert.False(t, state.Enabled)
	assert.Equal(t, PermissionAuthorized, state.Permission)
	assert.False(t, f.notifier.Has("n1"))

	require.NoError(t, f.scheduler.NoteSaved(ctx, model.Note{ID: "n2", Title: "y", ReminderDate: future(f.clock, time.Hour)}))
	assert.False(t, f.notifier.Has("n2"))
}

func TestScheduler_NoteSaved_UpsertAndCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, PermissionAuthorized, true, true)

	note := model.Note{ID: "n1", Title: "first", ReminderDate: future(f.clock, time.Hour)}
	require.NoError(t, f.scheduler.NoteSaved(ctx, note))

	note.Title = "second"
	note.ReminderDate = future(f.clock, 2*time.Hour)
	require.NoError(t, f.scheduler.NoteSaved(ctx, note))

	pending := f.notifier.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "second", pending[0].Title)
	assert.Equal(t, *note.ReminderDate, pending[0].At)

	// дата в прошлом снимает уведомление
	past := f.clock.Now().Add(-time.Minute)
	note.ReminderDate = &past
	require.NoError(t, f.scheduler.NoteSaved(ctx, note))
	assert.False(t, f.notifier.Has("n1"))

	// снятие даты тоже
	require.NoError(t, f.scheduler.NoteSaved(ctx, model.Note{ID: "n2", Title: "x", ReminderDate: future(f.clock, time.Hour)}))
	require.NoError(t, f.scheduler.NoteSaved(ctx, model.Note{ID: "n2", Title: "x"}))
	assert.False(t, f.notifier.Has("n2"))
}

func TestScheduler_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, PermissionAuthorized, true, true)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, f.scheduler.NoteSaved(ctx, model.Note{ID: id, Title: id, ReminderDate: future(f.clock, time.Hour)}))
	}

	require.NoError(t, f.scheduler.NoteDeleted(ctx, "a"))
	assert.False(t, f.notifier.Has("a"))
	assert.True(t, f.notifier.Has("b"))

	require.NoError(t, f.scheduler.NotesCleared(ctx, []string{"b", "c"}))
	assert.Empty(t, f.notifier.Pending())
}

func TestScheduler_ScheduleError(t *testing.T) {
	ctx := context.Background()
	m := &mockNotifier{
		PermissionStatusFunc: func(ctx context.Context) (Permission, error) { return PermissionAuthorized, nil },
		ScheduleAlertFunc: func(ctx context.Context, id, title, body string, at time.Time) error {
			return errors.New("quota exceeded")
		},
	}
	settings := memory.NewSettingsStore()
	require.NoError(t, settings.SetNotificationsEnabled(true))

	clk := &clock.Fixed{T: time.Now()}
	s, err := NewScheduler(ctx, m, settings, clk, false)
	require.NoError(t, err)

	err = s.NoteSaved(ctx, model.Note{ID: "n1", Title: "x", ReminderDate: future(clk, time.Hour)})
	assert.Error(t, err)
	assert.False(t, s.IsScheduled("n1"))
}

func TestScheduler_PersistFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	m := &mockNotifier{
		PermissionStatusFunc: func(ctx context.Context) (Permission, error) { return PermissionAuthorized, nil },
	}
	s, err := NewScheduler(ctx, m, &failingSettings{}, nil, false)
	require.NoError(t, err)

	state, err := s.Enable(ctx)
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)
	assert.True(t, state.Enabled, "in-memory state stays authoritative")
}

func TestScheduler_FollowsNoteEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, PermissionAuthorized, true, true)

	events := notes.NewEventService()
	unsubscribe := f.scheduler.Subscribe(events)
	defer unsubscribe()
	svc := notes.NewNoteService(memory.NewRepository(), events, f.clock)

	note, err := svc.Add(ctx, model.Note{Title: "Ping", ReminderDate: future(f.clock, time.Hour)})
	require.NoError(t, err)
	assert.True(t, f.notifier.Has(note.ID))

	require.NoError(t, svc.TogglePin(ctx, note.ID))
	assert.True(t, f.notifier.Has(note.ID))

	require.NoError(t, svc.Delete(ctx, note.ID))
	assert.False(t, f.notifier.Has(note.ID))

	other, err := svc.Add(ctx, model.Note{Title: "Pong", ReminderDate: future(f.clock, time.Hour)})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAll(ctx))
	assert.False(t, f.notifier.Has(other.ID))
}

func TestScheduler_ReconcilesPeriodically(t *testing.T) {
	f := newFixture(t, PermissionAuthorized, true, true)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- f.scheduler.Reconcile(ctx, 10*time.Millisecond)
	}()

	require.NoError(t, f.notifier.SetPermission(PermissionDenied))
	require.Eventually(t, func() bool {
		return !f.scheduler.State().Enabled
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Reconcile did not stop after cancel")
	}
}

func TestPermission(t *testing.T) {
	assert.True(t, PermissionAuthorized.Allows())
	assert.True(t, PermissionProvisional.Allows())
	assert.False(t, PermissionDenied.Allows())
	assert.False(t, PermissionNotDetermined.Allows())

	p, err := ParsePermission("Provisional")
	require.NoError(t, err)
	assert.Equal(t, PermissionProvisional, p)

	_, err = ParsePermission("maybe")
	assert.ErrorIs(t, err, model.ErrValidation)

	text, err := PermissionDenied.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "denied", string(text))

	var back Permission
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, PermissionDenied, back)
}
