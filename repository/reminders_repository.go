package repository

import (
	"omninote-api/models"

	"github.com/google/uuid"
)

// CreateReminder adds a reminder, enabled, prepended to the list. Frequency
// defaults to daily when the reminder is recurring and none was given.
func (s *Store) CreateReminder(message, timeOfDay string, recurring bool, frequency models.Frequency) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if recurring && frequency == "" {
		frequency = models.FrequencyDaily
	}
	rem := models.Reminder{
		ID:        uuid.NewString(),
		Message:   message,
		Time:      timeOfDay,
		Recurring: recurring,
		Frequency: frequency,
		Enabled:   true,
	}
	s.reminders = append([]models.Reminder{rem}, s.reminders...)
	if err := s.flush(); err != nil {
		return nil, err
	}
	return &rem, nil
}

// ToggleReminder flips the enabled flag. Disabled reminders still exist and
// are listed.
func (s *Store) ToggleReminder(id string) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			s.reminders[i].Enabled = !s.reminders[i].Enabled
			if err := s.flush(); err != nil {
				return nil, err
			}
			rem := s.reminders[i]
			return &rem, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteReminder removes the reminder by id.
func (s *Store) DeleteReminder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			return s.flush()
		}
	}
	return ErrNotFound
}

// ListReminders returns copies in insertion order, most recent first. There is
// no derived filtering and no firing logic.
func (s *Store) ListReminders() []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}
