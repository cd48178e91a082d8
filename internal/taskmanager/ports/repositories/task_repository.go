package repositories

import (
	"context"

	"taskmanager/internal/taskmanager/domain/entities"
)

// TaskRepository persists tasks. Every read skips soft-deleted rows and
// returns entities.ErrTaskNotFound when nothing matches.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) (*entities.Task, error)

	FindByID(ctx context.Context, id string) (*entities.Task, error)

	// FindByUserID returns the user's tasks newest first, narrowed to status when it is not nil.
	FindByUserID(ctx context.Context, userID int64, status *entities.TaskStatus) ([]*entities.Task, error)

	FindAll(ctx context.Context) ([]*entities.Task, error)

	Update(ctx context.Context, task *entities.Task) (*entities.Task, error)

	SoftDelete(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error
}
