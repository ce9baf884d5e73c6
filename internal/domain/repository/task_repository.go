package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"taskhub/internal/common"
	"taskhub/internal/domain/model"
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	ListByOwner(ctx context.Context, ownerID string, filter model.TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
	StatsByOwner(ctx context.Context, ownerID string) (*model.TaskStats, error)
}

type pgTaskRepository struct {
	db *sql.DB
}

func NewPgTaskRepository(db *sql.DB) TaskRepository {
	return &pgTaskRepository{db: db}
}

// taskSelect joins owner and creator display fields so responses never
// carry bare user ids.
const taskSelect = `
        SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
               t.created_at, t.updated_at,
               at_user.id, at_user.name, at_user.email, at_user.avatar,
               cb_user.id, cb_user.name, cb_user.email, cb_user.avatar
        FROM tasks t
        JOIN users at_user ON t.assigned_to = at_user.id
        JOIN users cb_user ON t.created_by = cb_user.id`

func scanTask(row interface{ Scan(...interface{}) error }) (*model.Task, error) {
	task := &model.Task{}
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority, &task.DueDate,
		&task.CreatedAt, &task.UpdatedAt,
		&task.AssignedTo.ID, &task.AssignedTo.Name, &task.AssignedTo.Email, &task.AssignedTo.Avatar,
		&task.CreatedBy.ID, &task.CreatedBy.Name, &task.CreatedBy.Email, &task.CreatedBy.Avatar,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *pgTaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (id, title, description, status, priority, due_date, assigned_to, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.AssignedTo.ID, task.CreatedBy.ID,
	)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	query := taskSelect + ` WHERE t.id = $1`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTaskRepository.FindByID: %w", err)
	}
	return task, nil
}

// ListByOwner builds the filter clause dynamically. Ownership is always the
// first condition; optional filters AND onto it, and the search term matches
// title or description case-insensitively.
func (r *pgTaskRepository) ListByOwner(ctx context.Context, ownerID string, filter model.TaskFilter) ([]model.Task, error) {
	var query strings.Builder
	query.WriteString(taskSelect)
	query.WriteString(" WHERE t.assigned_to = $1")

	args := []interface{}{ownerID}
	argID := 2

	if filter.Status != "" {
		query.WriteString(fmt.Sprintf(" AND t.status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}
	if filter.Priority != "" {
		query.WriteString(fmt.Sprintf(" AND t.priority = $%d", argID))
		args = append(args, filter.Priority)
		argID++
	}
	if filter.Search != "" {
		query.WriteString(fmt.Sprintf(" AND (t.title ILIKE $%d OR t.description ILIKE $%d)", argID, argID+1))
		likeTerm := "%" + filter.Search + "%"
		args = append(args, likeTerm, likeTerm)
		argID += 2
	}

	query.WriteString(" ORDER BY t.created_at DESC")

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("pgTaskRepository.ListByOwner query: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("pgTaskRepository.ListByOwner scan: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTaskRepository.ListByOwner rows.Err: %w", err)
	}
	return tasks, nil
}

func (r *pgTaskRepository) Update(ctx context.Context, task *model.Task) error {
	query := `UPDATE tasks SET
                title = $1, description = $2, status = $3, priority = $4,
                due_date = $5, updated_at = CURRENT_TIMESTAMP
              WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority, task.DueDate, task.ID,
	)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Update rows affected: %w", err)
	}
	if affected == 0 {
		// Row disappeared between the ownership check and the write.
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// StatsByOwner aggregates over the owner's full task set in one round trip.
func (r *pgTaskRepository) StatsByOwner(ctx context.Context, ownerID string) (*model.TaskStats, error) {
	query := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'todo'),
               COUNT(*) FILTER (WHERE status = 'in-progress'),
               COUNT(*) FILTER (WHERE status = 'completed'),
               COUNT(*) FILTER (WHERE priority = 'high'),
               COUNT(*) FILTER (WHERE priority = 'medium'),
               COUNT(*) FILTER (WHERE priority = 'low')
        FROM tasks WHERE assigned_to = $1`

	stats := &model.TaskStats{}
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&stats.Total, &stats.Todo, &stats.InProgress, &stats.Completed,
		&stats.High, &stats.Medium, &stats.Low,
	)
	if err != nil {
		return nil, fmt.Errorf("pgTaskRepository.StatsByOwner: %w", err)
	}
	return stats, nil
}
