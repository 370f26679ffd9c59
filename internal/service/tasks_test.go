package service

import (
	"context"
	"testing"
	"time"

	"github.com/AdReachMedia/LeadGen-CRM/internal/cache"
	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

type mockTaskRepo struct {
	CreateTaskFunc    func(ctx context.Context, ownerID string, leadID int64, dueDate time.Time, description string) error
	ListOpenTasksFunc func(ctx context.Context, ownerID string, leadID *int64) ([]models.TaskWithLead, error)
	CompleteTaskFunc  func(ctx context.Context, ownerID string, id int64) error
	UpdateTaskFunc    func(ctx context.Context, ownerID string, id int64, dueDate time.Time, description string) error
	DeleteTaskFunc    func(ctx context.Context, ownerID string, id int64) error
}

func (m *mockTaskRepo) CreateTask(ctx context.Context, ownerID string, leadID int64, dueDate time.Time, description string) error {
	return m.CreateTaskFunc(ctx, ownerID, leadID, dueDate, description)
}
func (m *mockTaskRepo) ListOpenTasks(ctx context.Context, ownerID string, leadID *int64) ([]models.TaskWithLead, error) {
	return m.ListOpenTasksFunc(ctx, ownerID, leadID)
}
func (m *mockTaskRepo) CompleteTask(ctx context.Context, ownerID string, id int64) error {
	return m.CompleteTaskFunc(ctx, ownerID, id)
}
func (m *mockTaskRepo) UpdateTask(ctx context.Context, ownerID string, id int64, dueDate time.Time, description string) error {
	return m.UpdateTaskFunc(ctx, ownerID, id, dueDate, description)
}
func (m *mockTaskRepo) DeleteTask(ctx context.Context, ownerID string, id int64) error {
	return m.DeleteTaskFunc(ctx, ownerID, id)
}

func newTaskService(repo *mockTaskRepo) *TaskService {
	return NewTaskService(repo, cache.New(time.Minute))
}

func taskDue(id int64, due time.Time) models.TaskWithLead {
	return models.TaskWithLead{Task: models.Task{ID: id, DueDate: due}}
}

func TestCreateTask_ValidatesBeforeOwnerCheck(t *testing.T) {
	svc := newTaskService(&mockTaskRepo{})

	// Even an unauthenticated caller gets the validation error, not silence.
	err := svc.CreateTask(context.Background(), "", 1, time.Now(), "")
	if !models.IsValidation(err) {
		t.Errorf("expected ValidationError for empty description, got %v", err)
	}

	err = svc.CreateTask(context.Background(), "u1", 0, time.Now(), "call back")
	if !models.IsValidation(err) {
		t.Errorf("expected ValidationError for missing lead id, got %v", err)
	}
}

func TestCreateTask_TruncatesDueDate(t *testing.T) {
	var gotDue time.Time
	repo := &mockTaskRepo{
		CreateTaskFunc: func(ctx context.Context, ownerID string, leadID int64, dueDate time.Time, description string) error {
			gotDue = dueDate
			return nil
		},
	}
	svc := newTaskService(repo)

	due := time.Date(2026, 3, 14, 17, 45, 12, 0, time.UTC)
	if err := svc.CreateTask(context.Background(), "u1", 3, due, "call back"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !gotDue.Equal(want) {
		t.Errorf("stored due date = %v; want %v", gotDue, want)
	}
}

func TestListOpenTasks_EmptyOwner(t *testing.T) {
	repo := &mockTaskRepo{
		ListOpenTasksFunc: func(context.Context, string, *int64) ([]models.TaskWithLead, error) {
			t.Fatal("repo must not be called without an owner")
			return nil, nil
		},
	}
	svc := newTaskService(repo)

	tasks, err := svc.ListOpenTasks(context.Background(), "", nil)
	if err != nil || tasks != nil {
		t.Errorf("want empty result and nil error, got %v, %v", tasks, err)
	}
}

func TestListOpenTasks_CachedPerLeadFilter(t *testing.T) {
	calls := 0
	repo := &mockTaskRepo{
		ListOpenTasksFunc: func(ctx context.Context, ownerID string, leadID *int64) ([]models.TaskWithLead, error) {
			calls++
			return []models.TaskWithLead{taskDue(1, time.Now())}, nil
		},
	}
	svc := newTaskService(repo)

	leadID := int64(7)
	if _, err := svc.ListOpenTasks(context.Background(), "u1", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListOpenTasks(context.Background(), "u1", &leadID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListOpenTasks(context.Background(), "u1", nil); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("repo called %d times; want 2 (distinct keys per lead filter)", calls)
	}
}

func TestCompleteTask_FlushesCache(t *testing.T) {
	listCalls := 0
	repo := &mockTaskRepo{
		ListOpenTasksFunc: func(context.Context, string, *int64) ([]models.TaskWithLead, error) {
			listCalls++
			return nil, nil
		},
		CompleteTaskFunc: func(context.Context, string, int64) error { return nil },
	}
	svc := newTaskService(repo)

	if _, err := svc.ListOpenTasks(context.Background(), "u1", nil); err != nil {
		t.Fatal(err)
	}
	if err := svc.CompleteTask(context.Background(), "u1", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListOpenTasks(context.Background(), "u1", nil); err != nil {
		t.Fatal(err)
	}
	if listCalls != 2 {
		t.Errorf("list hit the repo %d times; want 2 after completion flushed the cache", listCalls)
	}
}

func TestUpdateTask_RequiresDescription(t *testing.T) {
	svc := newTaskService(&mockTaskRepo{})

	err := svc.UpdateTask(context.Background(), "u1", 1, time.Now(), "")
	if !models.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestPartitionByUrgency(t *testing.T) {
	today := time.Date(2026, 8, 29, 13, 0, 0, 0, time.UTC)
	overdue := taskDue(1, today.AddDate(0, 0, -3))
	dueToday := taskDue(2, time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC))
	tomorrow := taskDue(3, today.AddDate(0, 0, 1))
	nextWeek := taskDue(4, today.AddDate(0, 0, 7))

	urgent, future := PartitionByUrgency([]models.TaskWithLead{overdue, dueToday, tomorrow, nextWeek}, today)

	if len(urgent) != 2 || urgent[0].ID != 1 || urgent[1].ID != 2 {
		t.Errorf("urgent = %+v; want overdue and due-today tasks in order", urgent)
	}
	if len(future) != 2 || future[0].ID != 3 || future[1].ID != 4 {
		t.Errorf("future = %+v; want tomorrow and next-week tasks in order", future)
	}
	if len(urgent)+len(future) != 4 {
		t.Errorf("partition lost or duplicated tasks: %d + %d", len(urgent), len(future))
	}
}

func TestPartitionByUrgency_Empty(t *testing.T) {
	urgent, future := PartitionByUrgency(nil, time.Now())
	if urgent != nil || future != nil {
		t.Errorf("want both halves empty, got %v / %v", urgent, future)
	}
}
