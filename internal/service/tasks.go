package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AdReachMedia/LeadGen-CRM/internal/cache"
	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// TaskRepository defines the persistence operations needed by the TaskService.
type TaskRepository interface {
	// CreateTask inserts a new open task for the owner's lead.
	CreateTask(ctx context.Context, ownerID string, leadID int64, dueDate time.Time, description string) error
	// ListOpenTasks returns incomplete tasks of non-archived leads ordered by
	// due date; leadID optionally restricts to one lead.
	ListOpenTasks(ctx context.Context, ownerID string, leadID *int64) ([]models.TaskWithLead, error)
	// CompleteTask marks a task completed.
	CompleteTask(ctx context.Context, ownerID string, id int64) error
	// UpdateTask replaces due date and description.
	UpdateTask(ctx context.Context, ownerID string, id int64, dueDate time.Time, description string) error
	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, ownerID string, id int64) error
}

// TaskService implements CRUD over follow-up tasks. Operations with an empty
// owner id are no-ops returning neutral results.
type TaskService struct {
	repo  TaskRepository
	cache *cache.Cache
}

// NewTaskService constructs a TaskService with the provided repository and
// read cache.
func NewTaskService(repo TaskRepository, c *cache.Cache) *TaskService {
	return &TaskService{repo: repo, cache: c}
}

// CreateTask validates and stores a new task. The description is required;
// validation happens before any remote call.
func (s *TaskService) CreateTask(ctx context.Context, ownerID string, leadID int64, dueDate time.Time, description string) error {
	if description == "" {
		return models.NewValidationError("description", "must not be empty")
	}
	if leadID <= 0 {
		return models.NewValidationError("lead_id", "must reference a lead")
	}
	if ownerID == "" {
		return nil
	}
	if err := s.repo.CreateTask(ctx, ownerID, leadID, dateOnly(dueDate), description); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

// ListOpenTasks returns the owner's open tasks for active leads, due date
// ascending, optionally restricted to one lead.
func (s *TaskService) ListOpenTasks(ctx context.Context, ownerID string, leadID *int64) ([]models.TaskWithLead, error) {
	if ownerID == "" {
		return nil, nil
	}
	key := "tasks:" + ownerID
	if leadID != nil {
		key = fmt.Sprintf("tasks:%s:%d", ownerID, *leadID)
	}
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.TaskWithLead), nil
	}
	tasks, err := s.repo.ListOpenTasks(ctx, ownerID, leadID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, tasks)
	return tasks, nil
}

// CompleteTask marks a task done. Idempotent on retry.
func (s *TaskService) CompleteTask(ctx context.Context, ownerID string, id int64) error {
	if ownerID == "" {
		return nil
	}
	if err := s.repo.CompleteTask(ctx, ownerID, id); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

// UpdateTask replaces a task's due date and description.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID string, id int64, dueDate time.Time, description string) error {
	if description == "" {
		return models.NewValidationError("description", "must not be empty")
	}
	if ownerID == "" {
		return nil
	}
	if err := s.repo.UpdateTask(ctx, ownerID, id, dateOnly(dueDate), description); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

// DeleteTask removes a task permanently.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID string, id int64) error {
	if ownerID == "" {
		return nil
	}
	if err := s.repo.DeleteTask(ctx, ownerID, id); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PartitionByUrgency splits tasks into those due on or before today and those
// due later. Pure: no I/O, input order preserved within each half.
func PartitionByUrgency(tasks []models.TaskWithLead, today time.Time) (urgent, future []models.TaskWithLead) {
	cutoff := dateOnly(today)
	for _, t := range tasks {
		if !dateOnly(t.DueDate).After(cutoff) {
			urgent = append(urgent, t)
		} else {
			future = append(future, t)
		}
	}
	return urgent, future
}
