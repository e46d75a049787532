package events

// Change event types pushed over the change feed. The client re-derives its
// visible lists when one arrives. These payloads are intentionally small and
// versionable; changes should be additive.
const (
	NoteCreated     = "note.created"
	NoteUpdated     = "note.updated"
	NoteDeleted     = "note.deleted"
	TaskCreated     = "task.created"
	TaskUpdated     = "task.updated"
	TaskDeleted     = "task.deleted"
	ReminderCreated = "reminder.created"
	ReminderUpdated = "reminder.updated"
	ReminderDeleted = "reminder.deleted"
)

// EntityChanged is emitted after every committed mutation.
type EntityChanged struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}
