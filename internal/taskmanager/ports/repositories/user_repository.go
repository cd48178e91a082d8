package repositories

import (
	"context"

	"taskmanager/internal/taskmanager/domain/entities"
)

// UserRepository persists users. Lookups that find nothing return entities.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByIdentifyNumber(ctx context.Context, identifyNumber int64) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	FindAll(ctx context.Context) ([]*entities.User, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)

	Delete(ctx context.Context, identifyNumber int64) error
}
