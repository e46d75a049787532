package models

// Task is a time-boxed block on a given calendar day. StartTime and EndTime are
// zero-padded "HH:MM" strings; the padding is enforced when the task enters the
// system so that lexicographic order equals chronological order. End is not
// validated against start and overlapping tasks are allowed.
type Task struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Priority  Priority `json:"priority"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Completed bool     `json:"completed"`
	Date      string   `json:"date"`
}
