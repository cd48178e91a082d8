package dto

import (
	"taskmanager/internal/taskmanager/domain/entities"
	"taskmanager/internal/taskmanager/ports/api"
)

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	DueDate     *string `json:"due_date" validate:"omitempty,iso8601"`
	UserID      int64   `json:"user_id" validate:"required,gt=0"`
}

// ToInput converts the request into use case input.
func (r *CreateTaskRequest) ToInput() api.CreateTaskInput {
	return api.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      toStatus(r.Status),
		DueDate:     r.DueDate,
		UserID:      r.UserID,
	}
}

// UpdateTaskRequest is the body of PUT/PATCH /tasks/:id. Omitted fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	DueDate     *string `json:"due_date" validate:"omitempty,iso8601"`
}

// ToInput converts the request into use case input.
func (r *UpdateTaskRequest) ToInput() api.UpdateTaskInput {
	return api.UpdateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      toStatus(r.Status),
		DueDate:     r.DueDate,
	}
}

// TaskFilterQuery is the query string of GET /tasks/user/:userId.
type TaskFilterQuery struct {
	Status string `query:"status" json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
}

// ToFilter converts the query into a use case filter.
func (q *TaskFilterQuery) ToFilter() api.TaskFilter {
	if q.Status == "" {
		return api.TaskFilter{}
	}
	status := entities.TaskStatus(q.Status)
	return api.TaskFilter{Status: &status}
}

func toStatus(raw *string) *entities.TaskStatus {
	if raw == nil {
		return nil
	}
	status := entities.TaskStatus(*raw)
	return &status
}
