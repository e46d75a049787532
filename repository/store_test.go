package repository

import (
	"strings"
	"testing"

	"omninote-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPersister records saves in memory so tests can assert that mutations
// reached the persistence boundary.
type memPersister struct {
	saves     int
	notes     []models.Note
	tasks     []models.Task
	reminders []models.Reminder
}

func (p *memPersister) Save(notes []models.Note, tasks []models.Task, reminders []models.Reminder) error {
	p.saves++
	p.notes = notes
	p.tasks = tasks
	p.reminders = reminders
	return nil
}

func newTestStore() (*Store, *memPersister) {
	p := &memPersister{}
	return NewStore(p, nil, nil, nil), p
}

func TestCreateNoteDefaultsAndSelects(t *testing.T) {
	s, p := newTestStore()

	note, err := s.CreateNote()
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "Untitled Note", note.Title)
	assert.Equal(t, "", note.Content)
	assert.Equal(t, models.PriorityMedium, note.Priority)
	assert.NotNil(t, note.Tags)
	assert.Positive(t, note.UpdatedAt)
	assert.Equal(t, note.ID, s.Selected())
	assert.Equal(t, 1, p.saves)

	second, err := s.CreateNote()
	require.NoError(t, err)
	list := s.ListNotes(NoteQuery{})
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest note comes first")
}

func TestUpdatedAtStrictlyIncreases(t *testing.T) {
	s, _ := newTestStore()
	note, err := s.CreateNote()
	require.NoError(t, err)

	prev := note.UpdatedAt
	title := "t"
	for i := 0; i < 50; i++ {
		updated, err := s.UpdateNote(note.ID, NoteUpdate{Title: &title})
		require.NoError(t, err)
		assert.Greater(t, updated.UpdatedAt, prev)
		prev = updated.UpdatedAt
	}
}

func TestUpdateNoteMergesOnlyPresentFields(t *testing.T) {
	s, _ := newTestStore()
	note, err := s.CreateNote()
	require.NoError(t, err)

	title := "Groceries"
	updated, err := s.UpdateNote(note.ID, NoteUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Title)
	assert.Equal(t, "", updated.Content)

	content := "milk"
	updated, err = s.UpdateNote(note.ID, NoteUpdate{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Title)
	assert.Equal(t, "milk", updated.Content)

	_, err = s.UpdateNote("missing", NoteUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedNote(t *testing.T, s *Store, title, content string, tags []string, priority models.Priority) models.Note {
	t.Helper()
	note, err := s.CreateNote()
	require.NoError(t, err)
	updated, err := s.UpdateNote(note.ID, NoteUpdate{
		Title:    &title,
		Content:  &content,
		Tags:     &tags,
		Priority: &priority,
	})
	require.NoError(t, err)
	return *updated
}

func TestListNotesFiltersAreConjunctive(t *testing.T) {
	s, _ := newTestStore()
	a := seedNote(t, s, "alpha", "", []string{"work"}, models.PriorityHigh)
	seedNote(t, s, "beta", "", []string{"home"}, models.PriorityHigh)
	seedNote(t, s, "gamma", "", []string{"work", "home"}, models.PriorityLow)

	got := s.ListNotes(NoteQuery{Tag: "work", Priority: models.PriorityHigh})
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	assert.Len(t, s.ListNotes(NoteQuery{Tag: "work"}), 2)
	assert.Len(t, s.ListNotes(NoteQuery{Tag: "home"}), 2)
	assert.Len(t, s.ListNotes(NoteQuery{Priority: models.PriorityHigh}), 2)
	assert.Len(t, s.ListNotes(NoteQuery{Tag: "home", Priority: models.PriorityHigh}), 1)
	assert.Len(t, s.ListNotes(NoteQuery{Tag: "work", Priority: models.PriorityCritical}), 0)
}

func TestListNotesSearchMatchesTitleOrContent(t *testing.T) {
	s, _ := newTestStore()
	seedNote(t, s, "Quarterly Plan", "budget numbers", nil, models.PriorityMedium)
	seedNote(t, s, "Standup", "discussed the PLAN briefly", nil, models.PriorityMedium)
	seedNote(t, s, "Recipes", "pasta", nil, models.PriorityMedium)

	got := s.ListNotes(NoteQuery{Search: "plan"})
	assert.Len(t, got, 2, "search is case-insensitive across title and content")
}

func TestListNotesSort(t *testing.T) {
	s, _ := newTestStore()
	seedNote(t, s, "banana", "", nil, models.PriorityMedium)
	seedNote(t, s, "apple", "", nil, models.PriorityMedium)
	cherry := seedNote(t, s, "cherry", "", nil, models.PriorityMedium)

	byUpdated := s.ListNotes(NoteQuery{})
	require.Len(t, byUpdated, 3)
	assert.Equal(t, cherry.ID, byUpdated[0].ID, "most recently touched first")
	// Monotonicity is per note; different notes may share a timestamp.
	for i := 1; i < len(byUpdated); i++ {
		assert.GreaterOrEqual(t, byUpdated[i-1].UpdatedAt, byUpdated[i].UpdatedAt)
	}

	byTitle := s.ListNotes(NoteQuery{SortBy: "title"})
	require.Len(t, byTitle, 3)
	assert.Equal(t, "apple", byTitle[0].Title)
	assert.Equal(t, "banana", byTitle[1].Title)
	assert.Equal(t, "cherry", byTitle[2].Title)
}

func TestListNotesSortIsStableForEqualTimestamps(t *testing.T) {
	preloaded := []models.Note{
		{ID: "n1", Title: "same", UpdatedAt: 1000},
		{ID: "n2", Title: "same", UpdatedAt: 1000},
		{ID: "n3", Title: "same", UpdatedAt: 1000},
		{ID: "n4", Title: "older", UpdatedAt: 999},
	}
	s := NewStore(&memPersister{}, preloaded, nil, nil)

	byUpdated := s.ListNotes(NoteQuery{})
	require.Len(t, byUpdated, 4)
	assert.Equal(t, "n1", byUpdated[0].ID)
	assert.Equal(t, "n2", byUpdated[1].ID)
	assert.Equal(t, "n3", byUpdated[2].ID)
	assert.Equal(t, "n4", byUpdated[3].ID)

	byTitle := s.ListNotes(NoteQuery{SortBy: "title"})
	require.Len(t, byTitle, 4)
	assert.Equal(t, "n4", byTitle[0].ID)
	assert.Equal(t, "n1", byTitle[1].ID, "equal titles keep list order")
	assert.Equal(t, "n2", byTitle[2].ID)
	assert.Equal(t, "n3", byTitle[3].ID)
}

func TestAllTagsFirstSeenOrder(t *testing.T) {
	s, _ := newTestStore()
	seedNote(t, s, "one", "", []string{"b", "a"}, models.PriorityMedium)
	seedNote(t, s, "two", "", []string{"a", "c"}, models.PriorityMedium)

	// Notes are prepended, so the second note's tags are seen first.
	assert.Equal(t, []string{"a", "c", "b"}, s.AllTags())
}

func TestAppendToContent(t *testing.T) {
	s, _ := newTestStore()
	note, err := s.CreateNote()
	require.NoError(t, err)

	// Empty content gets the block without a separator.
	updated, err := s.AppendToContent(note.ID, "**AI Summary:**\nshort")
	require.NoError(t, err)
	assert.Equal(t, "**AI Summary:**\nshort", updated.Content)

	// A concurrent user edit that lands before the append wins: the block is
	// appended to the content as it is now.
	content := "Y"
	_, err = s.UpdateNote(note.ID, NoteUpdate{Content: &content})
	require.NoError(t, err)
	updated, err = s.AppendToContent(note.ID, "**AI Summary:**\nsummary of X")
	require.NoError(t, err)
	assert.Equal(t, "Y\n\n---\n**AI Summary:**\nsummary of X", updated.Content)
}

func TestDeleteNoteAndSelection(t *testing.T) {
	s, _ := newTestStore()
	first, err := s.CreateNote()
	require.NoError(t, err)
	second, err := s.CreateNote()
	require.NoError(t, err)

	// second is selected; deleting first keeps the selection.
	require.NoError(t, s.DeleteNote(first.ID))
	assert.Equal(t, second.ID, s.Selected())

	// Deleting the selected note clears the selection.
	require.NoError(t, s.DeleteNote(second.ID))
	assert.Equal(t, "", s.Selected())

	assert.ErrorIs(t, s.DeleteNote(second.ID), ErrNotFound)
}

func TestSelect(t *testing.T) {
	s, _ := newTestStore()
	note, err := s.CreateNote()
	require.NoError(t, err)

	require.NoError(t, s.Select(""))
	assert.Equal(t, "", s.Selected())
	require.NoError(t, s.Select(note.ID))
	assert.Equal(t, note.ID, s.Selected())
	assert.ErrorIs(t, s.Select("missing"), ErrNotFound)
}

func TestShareNoteAssignsOnce(t *testing.T) {
	s, _ := newTestStore()
	note, err := s.CreateNote()
	require.NoError(t, err)

	first, assigned, err := s.ShareNote(note.ID)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	assert.True(t, assigned)

	after, err := s.GetNote(note.ID)
	require.NoError(t, err)
	touchedAt := after.UpdatedAt

	second, assigned, err := s.ShareNote(note.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second, "share id is stable")
	assert.False(t, assigned)

	after, err = s.GetNote(note.ID)
	require.NoError(t, err)
	assert.Equal(t, touchedAt, after.UpdatedAt, "repeat shares do not mutate the note")
}

func TestInsertNoteFillsDefaults(t *testing.T) {
	s, _ := newTestStore()
	note, err := s.InsertNote(models.Note{
		Title:   "Meeting: 2026-08-29 10:00",
		Content: "minutes",
		Tags:    []string{"AI-Transcription", "Meeting"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Positive(t, note.UpdatedAt)
	assert.Equal(t, models.PriorityMedium, note.Priority)
	assert.NotNil(t, note.Images, "nil images default to an empty slice")
	assert.Equal(t, note.ID, s.Selected())
}

func TestImages(t *testing.T) {
	s, _ := newTestStore()
	note, err := s.CreateNote()
	require.NoError(t, err)

	updated, err := s.AddImages(note.ID, []string{"data:image/png;base64,AAAA", "data:image/jpeg;base64,BBBB"})
	require.NoError(t, err)
	require.Len(t, updated.Images, 2)

	payload, err := s.ImageAt(note.ID, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payload, "data:image/jpeg"))

	_, err = s.ImageAt(note.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err = s.RemoveImage(note.ID, 0)
	require.NoError(t, err)
	require.Len(t, updated.Images, 1)
	assert.True(t, strings.HasPrefix(updated.Images[0], "data:image/jpeg"))

	_, err = s.RemoveImage(note.ID, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBrainDumpLifecycle(t *testing.T) {
	s, _ := newTestStore()
	note, err := s.CreateNote()
	require.NoError(t, err)

	updated, err := s.AddBrainDumpItem(note.ID)
	require.NoError(t, err)
	require.Len(t, updated.BrainDump, 1)
	item := updated.BrainDump[0]
	assert.Equal(t, models.PriorityMedium, item.Priority)
	assert.Equal(t, "", item.Text)

	text := "call the bank"
	completed := true
	updated, err = s.UpdateBrainDumpItem(note.ID, item.ID, BrainDumpUpdate{Text: &text, Completed: &completed})
	require.NoError(t, err)
	assert.Equal(t, "call the bank", updated.BrainDump[0].Text)
	assert.True(t, updated.BrainDump[0].Completed)

	_, err = s.UpdateBrainDumpItem(note.ID, "missing", BrainDumpUpdate{Text: &text})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err = s.RemoveBrainDumpItem(note.ID, item.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.BrainDump)
}

func TestListTasksSortedByStartTime(t *testing.T) {
	s, _ := newTestStore()
	for _, start := range []string{"09:00", "09:30", "08:00"} {
		_, err := s.CreateTask("block "+start, models.PriorityMedium, start, "10:00")
		require.NoError(t, err)
	}

	tasks := s.ListTasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "08:00", tasks[0].StartTime)
	assert.Equal(t, "09:00", tasks[1].StartTime)
	assert.Equal(t, "09:30", tasks[2].StartTime)
}

func TestTaskLifecycle(t *testing.T) {
	s, _ := newTestStore()
	task, err := s.CreateTask("deep work", "", "09:00", "11:00")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, task.Priority, "empty priority defaults")
	assert.False(t, task.Completed)
	assert.NotEmpty(t, task.Date)

	toggled, err := s.ToggleTask(task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	title := "deeper work"
	updated, err := s.UpdateTask(task.ID, TaskUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "deeper work", updated.Title)
	assert.True(t, updated.Completed)

	require.NoError(t, s.DeleteTask(task.ID))
	assert.ErrorIs(t, s.DeleteTask(task.ID), ErrNotFound)
}

func TestReminderLifecycle(t *testing.T) {
	s, _ := newTestStore()
	rem, err := s.CreateReminder("stretch", "15:00", true, "")
	require.NoError(t, err)
	assert.True(t, rem.Enabled)
	assert.Equal(t, models.FrequencyDaily, rem.Frequency, "recurring defaults to daily")

	oneOff, err := s.CreateReminder("dentist", "09:30", false, "")
	require.NoError(t, err)
	assert.Empty(t, oneOff.Frequency)

	list := s.ListReminders()
	require.Len(t, list, 2)
	assert.Equal(t, "dentist", list[0].Message, "most recent first")

	toggled, err := s.ToggleReminder(rem.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Enabled)
	require.Len(t, s.ListReminders(), 2, "disabled reminders are still listed")

	require.NoError(t, s.DeleteReminder(rem.ID))
	assert.ErrorIs(t, s.DeleteReminder(rem.ID), ErrNotFound)
}
