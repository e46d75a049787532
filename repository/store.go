package repository

import (
	"errors"
	"sync"
	"time"

	"omninote-api/models"
)

// ErrNotFound is returned when an entity id does not exist in its collection.
var ErrNotFound = errors.New("not found")

// Persister mirrors the whole application state to durable storage. It is
// called after every mutation with all three collections; there is no delta
// persistence.
type Persister interface {
	Save(notes []models.Note, tasks []models.Task, reminders []models.Reminder) error
}

// Store owns the three domain collections and the note selection. Every
// mutator runs under the mutex, so mutations are atomic from the caller's
// perspective, and flushes the full state before returning.
type Store struct {
	mu             sync.Mutex
	notes          []models.Note
	tasks          []models.Task
	reminders      []models.Reminder
	selectedNoteID string
	persister      Persister
}

// NewStore builds a store around previously loaded collections. Nil slices are
// accepted and treated as empty.
func NewStore(p Persister, notes []models.Note, tasks []models.Task, reminders []models.Reminder) *Store {
	return &Store{
		notes:     notes,
		tasks:     tasks,
		reminders: reminders,
		persister: p,
	}
}

// flush must be called with the mutex held.
func (s *Store) flush() error {
	return s.persister.Save(s.notes, s.tasks, s.reminders)
}

// nextUpdatedAt guarantees strict monotonicity even when two mutations land
// within the same wall-clock millisecond.
func nextUpdatedAt(prev int64) int64 {
	now := time.Now().UnixMilli()
	if now <= prev {
		return prev + 1
	}
	return now
}

// Selected returns the id of the selected note, or "" when nothing is selected.
func (s *Store) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedNoteID
}

// Select marks a note as selected. An empty id clears the selection.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && s.noteIndex(id) < 0 {
		return ErrNotFound
	}
	s.selectedNoteID = id
	return nil
}
