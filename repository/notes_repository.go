package repository

import (
	"sort"
	"strings"

	"omninote-api/models"

	"github.com/google/uuid"
)

// NoteUpdate is a permissive partial update. Nil fields are left untouched;
// present fields replace the stored value wholesale, matching the original
// merge-style update semantics.
type NoteUpdate struct {
	Title    *string
	Content  *string
	Tags     *[]string
	Priority *models.Priority
}

// NoteQuery are the four inputs of the derived note view.
type NoteQuery struct {
	Search   string
	Tag      string
	Priority models.Priority
	SortBy   string // "updated" (default) or "title"
}

// BrainDumpUpdate is a permissive partial update of one brain dump item.
type BrainDumpUpdate struct {
	Text         *string
	Priority     *models.Priority
	ReminderDate *string
	ReminderTime *string
	Completed    *bool
}

// noteIndex must be called with the mutex held.
func (s *Store) noteIndex(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateNote seeds a default note, prepends it (most-recent-first) and selects it.
func (s *Store) CreateNote() (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note := models.Note{
		ID:        uuid.NewString(),
		Title:     "Untitled Note",
		Content:   "",
		Tags:      []string{},
		Priority:  models.PriorityMedium,
		UpdatedAt: nextUpdatedAt(0),
		Images:    []string{},
	}
	s.notes = append([]models.Note{note}, s.notes...)
	s.selectedNoteID = note.ID
	if err := s.flush(); err != nil {
		return nil, err
	}
	return &note, nil
}

// InsertNote prepends a fully-formed note (the transcription pipeline path)
// and selects it. Missing id and timestamp are filled in.
func (s *Store) InsertNote(note models.Note) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.UpdatedAt == 0 {
		note.UpdatedAt = nextUpdatedAt(0)
	}
	note.Priority = note.Priority.OrDefault()
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if note.Images == nil {
		note.Images = []string{}
	}
	s.notes = append([]models.Note{note}, s.notes...)
	s.selectedNoteID = note.ID
	if err := s.flush(); err != nil {
		return nil, err
	}
	return &note, nil
}

// GetNote returns a copy of the note with the given id.
func (s *Store) GetNote(id string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	note := s.notes[i]
	return &note, nil
}

// UpdateNote merges the given fields into the note and refreshes its
// updatedAt. Individual fields are not validated (permissive merge).
func (s *Store) UpdateNote(id string, upd NoteUpdate) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	n := &s.notes[i]
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Content != nil {
		n.Content = *upd.Content
	}
	if upd.Tags != nil {
		n.Tags = *upd.Tags
	}
	if upd.Priority != nil {
		n.Priority = *upd.Priority
	}
	n.UpdatedAt = nextUpdatedAt(n.UpdatedAt)
	if err := s.flush(); err != nil {
		return nil, err
	}
	note := *n
	return &note, nil
}

// AppendToContent appends a delimited block to the note's content as it is
// *now*, not as it was when the producing AI call started. Overlapping AI
// calls therefore resolve last-write-wins against the current content.
func (s *Store) AppendToContent(id string, block string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	n := &s.notes[i]
	if n.Content == "" {
		n.Content = block
	} else {
		n.Content = n.Content + "\n\n---\n" + block
	}
	n.UpdatedAt = nextUpdatedAt(n.UpdatedAt)
	if err := s.flush(); err != nil {
		return nil, err
	}
	note := *n
	return &note, nil
}

// DeleteNote removes the note by id. Deleting the selected note clears the
// selection in the same mutation.
func (s *Store) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	if s.selectedNoteID == id {
		s.selectedNoteID = ""
	}
	return s.flush()
}

// ListNotes recomputes the derived note view: the subsequence satisfying all
// three predicates (AND), ordered by updatedAt descending or title ascending.
// The computation is pure; the store is not mutated and copies are returned.
func (s *Store) ListNotes(q NoteQuery) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	search := strings.ToLower(q.Search)
	out := make([]models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Title), search) &&
			!strings.Contains(strings.ToLower(n.Content), search) {
			continue
		}
		if q.Tag != "" && !containsTag(n.Tags, q.Tag) {
			continue
		}
		if q.Priority != "" && n.Priority.OrDefault() != q.Priority {
			continue
		}
		out = append(out, n)
	}
	if q.SortBy == "title" {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Title < out[j].Title
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UpdatedAt > out[j].UpdatedAt
		})
	}
	return out
}

// AllTags returns the union of tags across all notes, computed fresh, in
// first-seen order.
func (s *Store) AllTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	tags := []string{}
	for _, n := range s.notes {
		for _, t := range n.Tags {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				tags = append(tags, t)
			}
		}
	}
	return tags
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddImages appends encoded image payloads to the note's image sequence.
func (s *Store) AddImages(id string, payloads []string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	n := &s.notes[i]
	n.Images = append(n.Images, payloads...)
	n.UpdatedAt = nextUpdatedAt(n.UpdatedAt)
	if err := s.flush(); err != nil {
		return nil, err
	}
	note := *n
	return &note, nil
}

// RemoveImage removes the image at the given index.
func (s *Store) RemoveImage(id string, index int) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	n := &s.notes[i]
	if index < 0 || index >= len(n.Images) {
		return nil, ErrNotFound
	}
	n.Images = append(n.Images[:index], n.Images[index+1:]...)
	n.UpdatedAt = nextUpdatedAt(n.UpdatedAt)
	if err := s.flush(); err != nil {
		return nil, err
	}
	note := *n
	return &note, nil
}

// ImageAt returns the payload at the given index without mutating anything.
func (s *Store) ImageAt(id string, index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return "", ErrNotFound
	}
	if index < 0 || index >= len(s.notes[i].Images) {
		return "", ErrNotFound
	}
	return s.notes[i].Images[index], nil
}

// AddBrainDumpItem appends an empty medium-priority item to the note's dump.
func (s *Store) AddBrainDumpItem(id string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	n := &s.notes[i]
	n.BrainDump = append(n.BrainDump, models.BrainDumpItem{
		ID:       uuid.NewString(),
		Priority: models.PriorityMedium,
	})
	n.UpdatedAt = nextUpdatedAt(n.UpdatedAt)
	if err := s.flush(); err != nil {
		return nil, err
	}
	note := *n
	return &note, nil
}

// UpdateBrainDumpItem merges fields into one item of the note's dump.
func (s *Store) UpdateBrainDumpItem(noteID, itemID string, upd BrainDumpUpdate) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(noteID)
	if i < 0 {
		return nil, ErrNotFound
	}
	n := &s.notes[i]
	var item *models.BrainDumpItem
	for j := range n.BrainDump {
		if n.BrainDump[j].ID == itemID {
			item = &n.BrainDump[j]
			break
		}
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if upd.Text != nil {
		item.Text = *upd.Text
	}
	if upd.Priority != nil {
		item.Priority = *upd.Priority
	}
	if upd.ReminderDate != nil {
		item.ReminderDate = *upd.ReminderDate
	}
	if upd.ReminderTime != nil {
		item.ReminderTime = *upd.ReminderTime
	}
	if upd.Completed != nil {
		item.Completed = *upd.Completed
	}
	n.UpdatedAt = nextUpdatedAt(n.UpdatedAt)
	if err := s.flush(); err != nil {
		return nil, err
	}
	note := *n
	return &note, nil
}

// RemoveBrainDumpItem deletes one item from the note's dump.
func (s *Store) RemoveBrainDumpItem(noteID, itemID string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(noteID)
	if i < 0 {
		return nil, ErrNotFound
	}
	n := &s.notes[i]
	for j := range n.BrainDump {
		if n.BrainDump[j].ID == itemID {
			n.BrainDump = append(n.BrainDump[:j], n.BrainDump[j+1:]...)
			n.UpdatedAt = nextUpdatedAt(n.UpdatedAt)
			if err := s.flush(); err != nil {
				return nil, err
			}
			note := *n
			return &note, nil
		}
	}
	return nil, ErrNotFound
}

// ShareNote lazily assigns an opaque share id on first use and reuses it
// afterwards. Only the first call mutates the note; assigned reports whether
// this call was that first one.
func (s *Store) ShareNote(id string) (sharedID string, assigned bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return "", false, ErrNotFound
	}
	n := &s.notes[i]
	if n.SharedID == "" {
		n.SharedID = uuid.NewString()
		n.UpdatedAt = nextUpdatedAt(n.UpdatedAt)
		if err := s.flush(); err != nil {
			return "", false, err
		}
		assigned = true
	}
	return n.SharedID, assigned, nil
}
