package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID          string       `json:"id" bson:"_id"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Status      TaskStatus   `json:"status" bson:"status"`
	Priority    TaskPriority `json:"priority" bson:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty" bson:"due_date,omitempty"`
	AssignedTo  string       `json:"assignedTo,omitempty" bson:"assigned_to,omitempty"`
	Tags        []string     `json:"tags" bson:"tags"`
	CompletedAt *time.Time   `json:"completedAt,omitempty" bson:"completed_at,omitempty"`
	CreatedAt   time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

func NewTask(title, description string, status TaskStatus, priority TaskPriority, dueDate *time.Time, assignedTo string, tags []string) *Task {
	if status == "" {
		status = TaskStatusTodo
	}
	if priority == "" {
		priority = TaskPriorityMedium
	}
	t := &Task{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		AssignedTo:  assignedTo,
		Tags:        TrimTags(tags),
		CreatedAt:   time.Now().UTC(),
	}
	t.StampCompletion("")
	return t
}

// StampCompletion maintains CompletedAt across a status change.
// Entering "completed" sets the timestamp, leaving it clears it, and a
// save that keeps the status unchanged leaves the timestamp alone.
func (t *Task) StampCompletion(prev TaskStatus) {
	if t.Status == prev {
		return
	}
	if t.Status == TaskStatusCompleted {
		now := time.Now().UTC()
		t.CompletedAt = &now
		return
	}
	t.CompletedAt = nil
}

// IsOverdue reports whether the task has a due date strictly in the past
// and is not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Status == TaskStatusCompleted {
		return false
	}
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}

func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}
