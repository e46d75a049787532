package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"omninote-api/models"
)

// Storage keys, one per collection. The layout mirrors the browser-local
// storage the client used before this service existed, so each value is the
// JSON array of its whole collection. No versioning field; new optional entity
// fields must default when absent from old records.
const (
	keyNotes     = "omninote_notes"
	keyTasks     = "omninote_tasks"
	keyReminders = "omninote_reminders"
)

// Adapter persists the three domain collections wholesale in the app_state
// key-value table. It assumes a single process and a single writer.
type Adapter struct {
	db *sql.DB
}

func NewAdapter(db *sql.DB) *Adapter {
	return &Adapter{db: db}
}

// Load reads all three collections. A missing or unparsable value degrades to
// an empty collection; corrupt state is logged but never blocks startup.
func (a *Adapter) Load() (notes []models.Note, tasks []models.Task, reminders []models.Reminder, err error) {
	if err = loadCollection(a.db, keyNotes, &notes); err != nil {
		return nil, nil, nil, err
	}
	if err = loadCollection(a.db, keyTasks, &tasks); err != nil {
		return nil, nil, nil, err
	}
	if err = loadCollection(a.db, keyReminders, &reminders); err != nil {
		return nil, nil, nil, err
	}
	return notes, tasks, reminders, nil
}

func loadCollection(db *sql.DB, key string, dst interface{}) error {
	var raw string
	err := db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.Warn("stored collection is corrupt, starting empty", "key", key, "err", err)
	}
	return nil
}

// Save serializes all three collections and writes them in one transaction.
// There is no incremental persistence; the persisted state always reflects the
// most recent committed mutation.
func (a *Adapter) Save(notes []models.Note, tasks []models.Task, reminders []models.Reminder) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for key, collection := range map[string]interface{}{
		keyNotes:     emptyIfNilNotes(notes),
		keyTasks:     emptyIfNilTasks(tasks),
		keyReminders: emptyIfNilReminders(reminders),
	} {
		raw, err := json.Marshal(collection)
		if err != nil {
			return fmt.Errorf("serialize %s: %w", key, err)
		}
		_, err = tx.Exec(`
			INSERT INTO app_state (key, value) VALUES (?, ?)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
			key, string(raw))
		if err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// Nil slices would serialize as JSON null; the stored shape is always an array.

func emptyIfNilNotes(v []models.Note) []models.Note {
	if v == nil {
		return []models.Note{}
	}
	return v
}

func emptyIfNilTasks(v []models.Task) []models.Task {
	if v == nil {
		return []models.Task{}
	}
	return v
}

func emptyIfNilReminders(v []models.Reminder) []models.Reminder {
	if v == nil {
		return []models.Reminder{}
	}
	return v
}
