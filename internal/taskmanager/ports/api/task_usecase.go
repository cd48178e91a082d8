package api

import (
	"context"

	"taskmanager/internal/taskmanager/domain/entities"
)

// CreateTaskInput carries the fields of a new task. DueDate is an ISO-8601 string.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      *entities.TaskStatus
	DueDate     *string
	UserID      int64
}

// UpdateTaskInput is a partial update. Nil fields keep their current value.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *entities.TaskStatus
	DueDate     *string
}

// TaskFilter narrows a task listing.
type TaskFilter struct {
	Status *entities.TaskStatus
}

// TaskUseCase manages tasks. Deletion is soft.
type TaskUseCase interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*entities.Task, error)

	GetTaskByID(ctx context.Context, id string) (*entities.Task, error)

	GetTasksByUserID(ctx context.Context, userID int64, filter TaskFilter) ([]*entities.Task, error)

	GetAllTasks(ctx context.Context) ([]*entities.Task, error)

	UpdateTask(ctx context.Context, id string, input UpdateTaskInput) (*entities.Task, error)

	DeleteTask(ctx context.Context, id string) error
}
