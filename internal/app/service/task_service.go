package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"taskhub/internal/common"
	"taskhub/internal/domain/model"
	"taskhub/internal/domain/repository"
	"time"

	"github.com/google/uuid"
)

// StatsCache is the read cache for per-user stats summaries. A nil cache
// disables caching entirely.
type StatsCache interface {
	Get(ctx context.Context, userID string) (*model.TaskStats, bool)
	Set(ctx context.Context, userID string, stats *model.TaskStats) error
	Invalidate(ctx context.Context, userID string) error
}

type TaskService struct {
	taskRepo   repository.TaskRepository
	statsCache StatsCache
}

func NewTaskService(taskRepo repository.TaskRepository, statsCache StatsCache) *TaskService {
	return &TaskService{taskRepo: taskRepo, statsCache: statsCache}
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	// assignedTo / createdBy are deliberately absent: ownership is forced to
	// the requester no matter what the client sends.
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

func (s *TaskService) ListTasks(ctx context.Context, requester *model.User, filter model.TaskFilter) ([]model.Task, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("invalid status filter %q: %w", filter.Status, common.ErrValidation)
	}
	if filter.Priority != "" && !filter.Priority.IsValid() {
		return nil, fmt.Errorf("invalid priority filter %q: %w", filter.Priority, common.ErrValidation)
	}
	return s.taskRepo.ListByOwner(ctx, requester.ID, filter)
}

// GetTask enforces the ownership invariant: a task belonging to someone else
// is forbidden, not hidden.
func (s *TaskService) GetTask(ctx context.Context, requester *model.User, taskID string) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.AssignedTo.ID != requester.ID {
		return nil, fmt.Errorf("not authorized to view this task: %w", common.ErrForbidden)
	}
	return task, nil
}

func (s *TaskService) CreateTask(ctx context.Context, requester *model.User, req CreateTaskRequest) (*model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("task title is required: %w", common.ErrValidation)
	}

	status := model.StatusTodo
	if req.Status != "" {
		status = model.TaskStatus(req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid status %q: %w", req.Status, common.ErrValidation)
		}
	}
	priority := model.PriorityMedium
	if req.Priority != "" {
		priority = model.TaskPriority(req.Priority)
		if !priority.IsValid() {
			return nil, fmt.Errorf("invalid priority %q: %w", req.Priority, common.ErrValidation)
		}
	}

	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
		AssignedTo:  requester.Ref(),
		CreatedBy:   requester.Ref(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx, requester.ID)

	// Re-read for store-assigned timestamps and joined display fields.
	return s.taskRepo.FindByID(ctx, task.ID)
}

func (s *TaskService) UpdateTask(ctx context.Context, requester *model.User, taskID string, req UpdateTaskRequest) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.AssignedTo.ID != requester.ID {
		return nil, fmt.Errorf("not authorized to update this task: %w", common.ErrForbidden)
	}

	// Partial merge: absent fields keep their prior values.
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("task title cannot be empty: %w", common.ErrValidation)
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid status %q: %w", *req.Status, common.ErrValidation)
		}
		task.Status = status
	}
	if req.Priority != nil {
		priority := model.TaskPriority(*req.Priority)
		if !priority.IsValid() {
			return nil, fmt.Errorf("invalid priority %q: %w", *req.Priority, common.ErrValidation)
		}
		task.Priority = priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx, requester.ID)

	return s.taskRepo.FindByID(ctx, task.ID)
}

func (s *TaskService) DeleteTask(ctx context.Context, requester *model.User, taskID string) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.AssignedTo.ID != requester.ID {
		return fmt.Errorf("not authorized to delete this task: %w", common.ErrForbidden)
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}
	s.invalidateStats(ctx, requester.ID)
	return nil
}

// GetStats always aggregates the requester's full task set; list filters
// never apply here.
func (s *TaskService) GetStats(ctx context.Context, requester *model.User) (*model.TaskStats, error) {
	if s.statsCache != nil {
		if stats, ok := s.statsCache.Get(ctx, requester.ID); ok {
			return stats, nil
		}
	}

	stats, err := s.taskRepo.StatsByOwner(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, requester.ID, stats); err != nil {
			slog.Warn("failed to cache stats summary", "user_id", requester.ID, "error", err)
		}
	}
	return stats, nil
}

func (s *TaskService) invalidateStats(ctx context.Context, userID string) {
	if s.statsCache == nil {
		return
	}
	if err := s.statsCache.Invalidate(ctx, userID); err != nil {
		slog.Warn("failed to invalidate stats cache", "user_id", userID, "error", err)
	}
}
