package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devnotes/internal/model"
)

var (
	workTag = &model.Tag{ID: "t1", Name: "Work", Color: "TagBlue", Icon: "briefcase.fill"}
	homeTag = &model.Tag{ID: "t2", Name: "Home", Color: "TagGreen", Icon: "person.fill"}
)

func titles(notes []model.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func sampleNotes() []model.Note {
	// уже в каноническом порядке
	return []model.Note{
		{ID: "1", Title: "Deploy plan", Content: "roll out", Tag: workTag, IsPinned: true},
		{ID: "2", Title: "Groceries", Content: "Milk, eggs", Tag: homeTag, IsPinned: true},
		{ID: "3", Title: "", Content: "random DEPLOY thought"},
		{ID: "4", Title: "Standup", Content: "notes", Tag: workTag},
	}
}

func TestSearch(t *testing.T) {
	notes := sampleNotes()

	assert.Empty(t, Search(nil, "x"))
	assert.Equal(t, titles(notes), titles(Search(notes, "")))
	// пробелы входят в запрос как есть
	assert.Empty(t, Search(notes, "   "))
	assert.Equal(t, []string{"Deploy plan"}, titles(Search(notes, " plan")))
	assert.Empty(t, Search(notes, "plan "))
	assert.Equal(t, []string{"Deploy plan", ""}, titles(Search(notes, "deploy")))
	assert.Equal(t, []string{"Groceries"}, titles(Search(notes, "MILK")))
	assert.Empty(t, Search(notes, "nothing matches"))
}

func TestByTag(t *testing.T) {
	notes := sampleNotes()

	assert.Len(t, ByTag(notes, ""), 4)
	assert.Equal(t, []string{"Deploy plan", "Standup"}, titles(ByTag(notes, "Work")))
	assert.Empty(t, ByTag(notes, "work"), "name match is exact")
}

func TestByTag_StaleSnapshotMatchesOldName(t *testing.T) {
	notes := []model.Note{
		{ID: "1", Title: "old", Tag: &model.Tag{ID: "t1", Name: "Work"}},
		{ID: "2", Title: "new", Tag: &model.Tag{ID: "t1", Name: "Job"}},
	}

	assert.Equal(t, []string{"new"}, titles(ByTag(notes, "Job")))
	assert.Equal(t, []string{"old"}, titles(ByTag(notes, "Work")))
}

func TestSplitPinned_PreservesOrder(t *testing.T) {
	pinned, unpinned := SplitPinned(sampleNotes())

	assert.Equal(t, []string{"Deploy plan", "Groceries"}, titles(pinned))
	assert.Equal(t, []string{"", "Standup"}, titles(unpinned))
}

func TestPinnedOnly(t *testing.T) {
	notes := sampleNotes()

	assert.Equal(t, []string{"Deploy plan", "Groceries"}, titles(PinnedOnly(notes, "")))
	assert.Equal(t, []string{"Groceries"}, titles(PinnedOnly(notes, "eggs")))
}

func TestHome(t *testing.T) {
	notes := sampleNotes()

	v := Home(notes, Query{Search: "deploy", Tag: "Work"})
	assert.Equal(t, []string{"Deploy plan"}, titles(v.Pinned))
	assert.Empty(t, v.Unpinned)
	assert.False(t, v.Empty)
	assert.False(t, v.NoResults)

	v = Home(notes, Query{Tag: "Travel"})
	assert.False(t, v.Empty)
	assert.True(t, v.NoResults)

	v = Home(nil, Query{})
	assert.True(t, v.Empty)
	assert.False(t, v.NoResults)
}

func TestHome_DoesNotMutateInput(t *testing.T) {
	notes := sampleNotes()
	before := titles(notes)

	_ = Home(notes, Query{Search: "standup"})
	_ = Reminders(notes, FilterAll, "", time.Now())

	assert.Equal(t, before, titles(notes))
}

func TestParseReminderFilter(t *testing.T) {
	f, err := ParseReminderFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseReminderFilter(" Overdue ")
	require.NoError(t, err)
	assert.Equal(t, FilterOverdue, f)

	_, err = ParseReminderFilter("someday")
	assert.ErrorIs(t, err, model.ErrValidation)
}
