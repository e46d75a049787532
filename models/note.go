package models

// Note is a freeform note. UpdatedAt is unix milliseconds and strictly increases
// on every mutation. Optional fields may be absent in old persisted records and
// must default gracefully when read back.
type Note struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Content         string          `json:"content"`
	Tags            []string        `json:"tags"`
	Priority        Priority        `json:"priority,omitempty"`
	UpdatedAt       int64           `json:"updatedAt"`
	Images          []string        `json:"images,omitempty"`
	BrainDump       []BrainDumpItem `json:"brainDump,omitempty"`
	IsMeetingMinute bool            `json:"isMeetingMinute,omitempty"`
	ActionItems     []ActionItem    `json:"actionItems,omitempty"`
	SharedID        string          `json:"sharedId,omitempty"`
}

// BrainDumpItem is a lightweight sub-thought attached to a note, distinct from
// the note's main content. The reminder date and time are independent strings
// and are not validated against each other or against the current time.
type BrainDumpItem struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Priority     Priority `json:"priority"`
	ReminderDate string   `json:"reminderDate,omitempty"`
	ReminderTime string   `json:"reminderTime,omitempty"`
	Completed    bool     `json:"completed"`
}

// ActionItem is an owner+task record extracted from transcribed audio by the
// AI gateway. It is never created or edited directly by the user.
type ActionItem struct {
	Owner    string `json:"owner"`
	Task     string `json:"task"`
	Deadline string `json:"deadline,omitempty"`
}
