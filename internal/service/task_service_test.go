package service_test

import (
	"testing"
	"time"

	"taskblog/internal/models"
	"taskblog/internal/repository"
	"taskblog/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTaskService_ListTasks_MapsSortField(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)

	repo.On("List", mock.Anything, repository.TaskFilter{
		Status: models.TaskStatusTodo,
		Page:   1,
		Limit:  10,
		SortBy: "due_date",
		Order:  "asc",
	}).Return([]*models.Task{}, 0, nil)

	_, _, err := svc.ListTasks(t.Context(), repository.TaskFilter{
		Status: models.TaskStatusTodo,
		Page:   1,
		Limit:  10,
		SortBy: "dueDate",
		Order:  "asc",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTaskService_ListTasks_DefaultsSort(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)

	// Unknown sort field and order fall back to created_at descending.
	repo.On("List", mock.Anything, repository.TaskFilter{
		Page:   1,
		Limit:  10,
		SortBy: "created_at",
		Order:  "desc",
	}).Return([]*models.Task{}, 0, nil)

	_, _, err := svc.ListTasks(t.Context(), repository.TaskFilter{
		Page:   1,
		Limit:  10,
		SortBy: "color",
		Order:  "sideways",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTaskService_CreateTask_Defaults(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Task")).Return(nil)

	task, err := svc.CreateTask(t.Context(), service.CreateTaskInput{Title: "Plain task"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusTodo, task.Status)
	assert.Equal(t, models.TaskPriorityMedium, task.Priority)
	assert.Nil(t, task.CompletedAt)
}

func TestTaskService_GetTask_NotFound(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.GetTask(t.Context(), "missing")
	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, service.CodeNotFound, busErr.Code)
	assert.Equal(t, "Task not found", busErr.Message)
}

func TestTaskService_UpdateTask_CompletionStamp(t *testing.T) {
	task := models.NewTask("Finishable", "", models.TaskStatusInProgress, "", nil, "", nil)

	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	repo.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	repo.On("Update", mock.Anything, task).Return(nil)

	got, err := svc.UpdateTask(t.Context(), task.ID, service.WithStatus(models.TaskStatusCompleted))
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *got.CompletedAt, time.Second)
}

func TestTaskService_UpdateTask_ReopenClearsCompletion(t *testing.T) {
	task := models.NewTask("Reopened", "", models.TaskStatusCompleted, "", nil, "", nil)
	require.NotNil(t, task.CompletedAt)

	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	repo.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	repo.On("Update", mock.Anything, task).Return(nil)

	got, err := svc.UpdateTask(t.Context(), task.ID, service.WithStatus(models.TaskStatusTodo))
	require.NoError(t, err)
	assert.Nil(t, got.CompletedAt)
}

func TestTaskService_UpdateTask_UnrelatedFieldKeepsCompletion(t *testing.T) {
	task := models.NewTask("Done task", "", models.TaskStatusCompleted, "", nil, "", nil)
	require.NotNil(t, task.CompletedAt)
	original := *task.CompletedAt

	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	repo.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	repo.On("Update", mock.Anything, task).Return(nil)

	got, err := svc.UpdateTask(t.Context(), task.ID, service.WithTitle("Done task, renamed"))
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, original, *got.CompletedAt)
}

func TestTaskService_DeleteTask_NotFound(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	repo.On("Delete", mock.Anything, "missing").Return(repository.ErrNotFound)

	err := svc.DeleteTask(t.Context(), "missing")
	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, service.CodeNotFound, busErr.Code)
}

func TestTaskService_TaskStats(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	repo.On("Stats", mock.Anything).Return(&repository.TaskStats{
		ByStatus:   map[string]int{"todo": 2, "completed": 1},
		ByPriority: map[string]int{"high": 3},
		Overdue:    1,
	}, nil)

	stats, err := svc.TaskStats(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ByStatus["todo"])
	assert.Equal(t, 3, stats.ByPriority["high"])
	assert.Equal(t, 1, stats.Overdue)
}
