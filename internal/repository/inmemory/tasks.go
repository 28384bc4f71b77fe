package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskblog/internal/models"
	"taskblog/internal/repository"
)

type TaskStorage struct {
	mtx   sync.RWMutex
	tasks map[string]*models.Task
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{tasks: make(map[string]*models.Task)}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, task *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.tasks[task.ID] = cloneTask(task)
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id string) (*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneTask(t), nil
}

func (s *TaskStorage) List(ctx context.Context, filter repository.TaskFilter) ([]*models.Task, int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	matched := make([]*models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		matched = append(matched, t)
	}

	sortTasks(matched, filter.SortBy, filter.Order)

	total := len(matched)
	page := paginate(matched, filter.Page, filter.Limit)
	out := make([]*models.Task, len(page))
	for i, t := range page {
		out[i] = cloneTask(t)
	}
	return out, total, nil
}

func (s *TaskStorage) Update(ctx context.Context, task *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	task.UpdatedAt = &now
	s.tasks[task.ID] = cloneTask(task)
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *TaskStorage) Stats(ctx context.Context) (*repository.TaskStats, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	stats := &repository.TaskStats{
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
	}
	now := time.Now().UTC()
	for _, t := range s.tasks {
		stats.ByStatus[string(t.Status)]++
		stats.ByPriority[string(t.Priority)]++
		if t.IsOverdue(now) {
			stats.Overdue++
		}
	}
	return stats, nil
}

// sortTasks orders in place. Descending swaps the comparator operands
// rather than negating it, keeping equal elements non-less than each
// other (a strict weak ordering, as sort requires).
func sortTasks(tasks []*models.Task, sortBy, order string) {
	asc := order == "asc"
	less := func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if !asc {
			a, b = b, a
		}
		switch sortBy {
		case "due_date":
			switch {
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			default:
				return a.DueDate.Before(*b.DueDate)
			}
		case "priority":
			return a.Priority < b.Priority
		case "title":
			return a.Title < b.Title
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(tasks, less)
}

func cloneTask(t *models.Task) *models.Task {
	cp := *t
	cp.Tags = append([]string(nil), t.Tags...)
	return &cp
}
