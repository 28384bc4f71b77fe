// Package dto defines the JSON request and response bodies of the API.
package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"taskblog/internal/models"
)

// DueDate accepts the same layouts the dueDate validation rule does:
// RFC3339 timestamps and plain dates.
type DueDate struct {
	time.Time
}

func (d *DueDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
	}
	if err != nil {
		return fmt.Errorf("parsing due date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d *DueDate) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type CreatePostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status"`
}

// UpdatePostRequest uses pointers so that only fields present in the
// body are applied.
type UpdatePostRequest struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Category *string   `json:"category,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	Status   *string   `json:"status,omitempty"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	DueDate     *DueDate `json:"dueDate,omitempty"`
	AssignedTo  string   `json:"assignedTo"`
	Tags        []string `json:"tags"`
}

type UpdateTaskRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	DueDate     *DueDate  `json:"dueDate,omitempty"`
	AssignedTo  *string   `json:"assignedTo,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// PostResponse is a post plus its derived like count.
type PostResponse struct {
	*models.Post
	LikeCount int `json:"likeCount"`
}

func FromPost(p *models.Post) PostResponse {
	return PostResponse{Post: p, LikeCount: p.LikeCount()}
}

func FromPostList(posts []*models.Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i, p := range posts {
		out[i] = FromPost(p)
	}
	return out
}

// TaskResponse is a task plus its derived overdue flag.
type TaskResponse struct {
	*models.Task
	IsOverdue bool `json:"isOverdue"`
}

func FromTask(t *models.Task) TaskResponse {
	return TaskResponse{Task: t, IsOverdue: t.IsOverdue(time.Now().UTC())}
}

func FromTaskList(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = FromTask(t)
	}
	return out
}
