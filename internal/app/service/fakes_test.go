package service_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"taskhub/internal/common"
	"taskhub/internal/domain/model"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
	}
	clone := *user
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	users := []model.User{}
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *model.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return common.ErrNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return fmt.Errorf("email already in use: %w", common.ErrConflict)
		}
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.UpdatedAt = time.Now()
	return nil
}

type fakeTaskRepo struct {
	tasks      map[string]*model.Task
	seq        int
	statsCalls int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]*model.Task{}}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *model.Task) error {
	clone := *task
	r.seq++
	clone.CreatedAt = time.Unix(int64(r.seq), 0)
	clone.UpdatedAt = clone.CreatedAt
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id string) (*model.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *fakeTaskRepo) ListByOwner(_ context.Context, ownerID string, filter model.TaskFilter) ([]model.Task, error) {
	tasks := []model.Task{}
	for _, t := range r.tasks {
		if t.AssignedTo.ID != ownerID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.Description), needle) {
				continue
			}
		}
		tasks = append(tasks, *t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	return tasks, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *model.Task) error {
	stored, ok := r.tasks[task.ID]
	if !ok {
		return common.ErrNotFound
	}
	updated := *task
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.tasks[task.ID] = &updated
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) StatsByOwner(_ context.Context, ownerID string) (*model.TaskStats, error) {
	r.statsCalls++
	stats := &model.TaskStats{}
	for _, t := range r.tasks {
		if t.AssignedTo.ID != ownerID {
			continue
		}
		stats.Total++
		switch t.Status {
		case model.StatusTodo:
			stats.Todo++
		case model.StatusInProgress:
			stats.InProgress++
		case model.StatusCompleted:
			stats.Completed++
		}
		switch t.Priority {
		case model.PriorityLow:
			stats.Low++
		case model.PriorityMedium:
			stats.Medium++
		case model.PriorityHigh:
			stats.High++
		}
	}
	return stats, nil
}

type fakeStatsCache struct {
	entries map[string]*model.TaskStats
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: map[string]*model.TaskStats{}}
}

func (c *fakeStatsCache) Get(_ context.Context, userID string) (*model.TaskStats, bool) {
	stats, ok := c.entries[userID]
	return stats, ok
}

func (c *fakeStatsCache) Set(_ context.Context, userID string, stats *model.TaskStats) error {
	c.entries[userID] = stats
	return nil
}

func (c *fakeStatsCache) Invalidate(_ context.Context, userID string) error {
	delete(c.entries, userID)
	return nil
}
