package types

import (
	"regexp"

	"omninote-api/models"
)

// timeOfDayRe matches zero-padded 24h "HH:MM". The task list is sorted
// lexicographically, which is only chronological under this exact format, so
// the padding is enforced here at the input boundary rather than at sort time.
var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeOfDay reports whether s is a zero-padded "HH:MM" time string.
func ValidTimeOfDay(s string) bool {
	return timeOfDayRe.MatchString(s)
}

// UpdateNoteRequest carries a permissive partial note update. Nil fields are
// left untouched; present fields replace the stored value wholesale.
type UpdateNoteRequest struct {
	Title    *string          `json:"title"`
	Content  *string          `json:"content"`
	Tags     *[]string        `json:"tags"`
	Priority *models.Priority `json:"priority"`
}

// AppendImagesRequest appends already-encoded image payloads (data URLs), the
// path taken by camera and screen captures that were encoded in the browser.
type AppendImagesRequest struct {
	Images []string `json:"images"`
}

// UpdateBrainDumpItemRequest is a partial update of one brain dump item.
type UpdateBrainDumpItemRequest struct {
	Text         *string          `json:"text"`
	Priority     *models.Priority `json:"priority"`
	ReminderDate *string          `json:"reminderDate"`
	ReminderTime *string          `json:"reminderTime"`
	Completed    *bool            `json:"completed"`
}

// CreateTaskRequest schedules a new time block for today.
type CreateTaskRequest struct {
	Title     string          `json:"title"`
	Priority  models.Priority `json:"priority"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
}

// UpdateTaskRequest is a partial task update.
type UpdateTaskRequest struct {
	Title     *string          `json:"title"`
	Priority  *models.Priority `json:"priority"`
	StartTime *string          `json:"startTime"`
	EndTime   *string          `json:"endTime"`
	Completed *bool            `json:"completed"`
}

// CreateReminderRequest adds a reminder, enabled by default.
type CreateReminderRequest struct {
	Message   string           `json:"message"`
	Time      string           `json:"time"`
	Recurring bool             `json:"recurring"`
	Frequency models.Frequency `json:"frequency"`
}

// SetSelectionRequest sets or clears the selected note.
type SetSelectionRequest struct {
	NoteID *string `json:"noteId"`
}

// TranscribeRequest is the JSON alternative to a multipart audio upload,
// used when the browser hands over base64-encoded recording chunks.
type TranscribeRequest struct {
	Audio string `json:"audio"`
}
