package repository

import (
	"sort"
	"time"

	"omninote-api/models"

	"github.com/google/uuid"
)

// TaskUpdate is a permissive partial task update. Time fields are assumed to
// be validated at the input boundary.
type TaskUpdate struct {
	Title     *string
	Priority  *models.Priority
	StartTime *string
	EndTime   *string
	Completed *bool
}

func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateTask schedules a block for today. The caller validates that both time
// bounds are zero-padded "HH:MM"; no end>start or overlap checks are made.
func (s *Store) CreateTask(title string, priority models.Priority, startTime, endTime string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := models.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Priority:  priority.OrDefault(),
		StartTime: startTime,
		EndTime:   endTime,
		Completed: false,
		Date:      time.Now().Format("2006-01-02"),
	}
	s.tasks = append([]models.Task{task}, s.tasks...)
	if err := s.flush(); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask merges the given fields into the task.
func (s *Store) UpdateTask(id string, upd TaskUpdate) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	t := &s.tasks[i]
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.StartTime != nil {
		t.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		t.EndTime = *upd.EndTime
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}
	if err := s.flush(); err != nil {
		return nil, err
	}
	task := *t
	return &task, nil
}

// ToggleTask flips the completed flag.
func (s *Store) ToggleTask(id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	if err := s.flush(); err != nil {
		return nil, err
	}
	task := s.tasks[i]
	return &task, nil
}

// DeleteTask removes the task by id.
func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return s.flush()
}

// ListTasks returns copies ordered by startTime ascending, stable for equal
// times. Lexicographic order is chronological because the zero-padded "HH:MM"
// format is enforced on input.
func (s *Store) ListTasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}
