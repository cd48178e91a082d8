package api

import (
	"context"

	"taskmanager/internal/taskmanager/domain/entities"
)

// CreateUserInput carries the fields of a new user.
type CreateUserInput struct {
	IdentifyNumber int64
	Email          string
	Name           string
}

// UpdateUserInput is a partial update. Nil fields keep their current value.
type UpdateUserInput struct {
	Email *string
	Name  *string
}

// UserUseCase manages users keyed by identify number.
type UserUseCase interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*entities.User, error)

	GetUserByID(ctx context.Context, identifyNumber int64) (*entities.User, error)

	GetAllUsers(ctx context.Context) ([]*entities.User, error)

	UpdateUser(ctx context.Context, identifyNumber int64, input UpdateUserInput) (*entities.User, error)

	DeleteUser(ctx context.Context, identifyNumber int64) error
}
