package postgres

import (
	"taskmanager/internal/taskmanager/ports/repositories"
)

// RepositoryFactory builds the Postgres repositories over one pool.
type RepositoryFactory struct {
	userRepo repositories.UserRepository
	taskRepo repositories.TaskRepository
}

// NewRepositoryFactory returns repositories sharing pool.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo: NewUserRepository(pool),
		taskRepo: NewTaskRepository(pool),
	}
}

// UserRepository returns the user repository.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// TaskRepository returns the task repository.
func (f *RepositoryFactory) TaskRepository() repositories.TaskRepository {
	return f.taskRepo
}
