package gormstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devnotes/internal/model"
	"devnotes/internal/repository"
)

func newTestRepo(t *testing.T) *repo {
	t.Helper()
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)

	r, err := NewRepository(db, 16)
	require.NoError(t, err)
	return r.(*repo)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("postgres", "dsn")
	assert.Error(t, err)
}

func TestRepo_RoundTripPreservesSnapshot(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	created := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	remind := created.Add(48 * time.Hour)
	in := model.Note{
		ID:           "n1",
		Title:        "Title",
		Content:      "Body",
		CreatedAt:    created,
		Tag:          &model.Tag{ID: "t1", Name: "Çalışma", Color: "TagBlue", Icon: "briefcase.fill"},
		IsPinned:     true,
		ReminderDate: &remind,
	}
	require.NoError(t, r.Insert(ctx, in))

	// читаем мимо кэша, чтобы проверить сериализацию
	r.cache.Purge()
	got, err := r.FindByID(ctx, "n1")
	require.NoError(t, err)

	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Content, got.Content)
	assert.True(t, in.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, in.IsPinned, got.IsPinned)
	require.NotNil(t, got.ReminderDate)
	assert.True(t, remind.Equal(*got.ReminderDate))
	assert.Equal(t, *in.Tag, *got.Tag)
}

func TestRepo_ListOrder(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, r.Insert(ctx, model.Note{ID: "a", Title: "a", CreatedAt: base}))
	require.NoError(t, r.Insert(ctx, model.Note{ID: "b", Title: "b", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, r.Insert(ctx, model.Note{ID: "c", Title: "c", CreatedAt: base, IsPinned: true}))
	require.NoError(t, r.Insert(ctx, model.Note{ID: "d", Title: "d", CreatedAt: base.Add(2 * time.Hour), IsPinned: true}))

	notes, err := r.List(ctx)
	require.NoError(t, err)
	var ids []string
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids)
}

func TestRepo_UpdateClearsOptionalFields(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	remind := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	n := model.Note{ID: "n1", Title: "t", CreatedAt: remind, IsPinned: true, ReminderDate: &remind,
		Tag: &model.Tag{ID: "t1", Name: "x", Color: "TagRed", Icon: "tag.fill"}}
	require.NoError(t, r.Insert(ctx, n))

	n.IsPinned = false
	n.ReminderDate = nil
	n.Tag = nil
	found, err := r.Update(ctx, n)
	require.NoError(t, err)
	assert.True(t, found)

	r.cache.Purge()
	got, err := r.FindByID(ctx, "n1")
	require.NoError(t, err)
	assert.False(t, got.IsPinned)
	assert.Nil(t, got.ReminderDate)
	assert.Nil(t, got.Tag)
}

func TestRepo_MissingIDs(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	found, err := r.Update(ctx, model.Note{ID: "nope", Title: "x"})
	require.NoError(t, err)
	assert.False(t, found)

	found, err = r.Delete(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = r.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
}

func TestRepo_DeleteAllPurgesMirror(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	require.NoError(t, r.Insert(ctx, model.Note{ID: "a", Title: "a", CreatedAt: time.Now()}))
	require.NoError(t, r.Insert(ctx, model.Note{ID: "b", Title: "b", CreatedAt: time.Now()}))
	require.Equal(t, 2, r.cache.Len())

	require.NoError(t, r.DeleteAll(ctx))

	assert.Equal(t, 0, r.cache.Len())
	_, err := r.FindByID(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
	notes, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestFromRecord_CorruptSnapshot(t *testing.T) {
	n := fromRecord(noteRecord{ID: "x", Title: "t", TagData: []byte("{not json")})
	assert.Nil(t, n.Tag)
	assert.Equal(t, "t", n.Title)
}
