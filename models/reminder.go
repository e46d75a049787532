package models

// Frequency of a recurring reminder. Meaningful only when Recurring is set.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// Reminder is an inert record surfaced for manual reference. The service does
// not schedule or fire reminders; a disabled reminder still exists and is
// returned, the client renders it muted.
type Reminder struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Time      string    `json:"time"`
	Recurring bool      `json:"recurring"`
	Frequency Frequency `json:"frequency,omitempty"`
	Enabled   bool      `json:"enabled"`
}
