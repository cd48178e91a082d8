package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskmanager/internal/taskmanager/domain/entities"
	"taskmanager/internal/taskmanager/ports/api"
	"taskmanager/internal/taskmanager/ports/repositories"
	"taskmanager/pkg/logger"
)

const (
	methodCreateTask       = "CreateTask"
	methodGetTaskByID      = "GetTaskByID"
	methodGetTasksByUserID = "GetTasksByUserID"
	methodGetAllTasks      = "GetAllTasks"
	methodUpdateTask       = "UpdateTask"
	methodDeleteTask       = "DeleteTask"

	msgCreatingTask      = "creating task"
	msgTaskCreated       = "task created successfully"
	msgTaskRetrieved     = "task retrieved"
	msgTasksRetrieved    = "tasks retrieved"
	msgTaskUpdated       = "task updated successfully"
	msgTaskDeleted       = "task deleted successfully"
	msgTaskNotFound      = "task not found"
	msgOwnerNotFound     = "task owner not found"
	msgInvalidTaskInput  = "invalid task input"
	msgErrFindOwner      = "failed to find task owner"
	msgErrCreateTask     = "failed to create task"
	msgErrFindTask       = "failed to find task"
	msgErrListTasks      = "failed to list tasks"
	msgErrUpdateTask     = "failed to update task"
	msgErrSoftDeleteTask = "failed to soft delete task"

	errCtxValidatingTask = "validating task"
	errCtxFindingOwner   = "finding task owner"
	errCtxCreatingTask   = "creating task"
	errCtxFindingTask    = "finding task"
	errCtxListingTasks   = "listing tasks"
	errCtxUpdatingTask   = "updating task"
	errCtxDeletingTask   = "deleting task"
)

// TaskUseCaseImpl implements api.TaskUseCase.
type TaskUseCaseImpl struct {
	taskRepo repositories.TaskRepository
	userRepo repositories.UserRepository
}

// NewTaskUseCase returns a task use case. userRepo is used for owner checks only.
func NewTaskUseCase(taskRepo repositories.TaskRepository, userRepo repositories.UserRepository) api.TaskUseCase {
	return &TaskUseCaseImpl{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTask stores a new task for an existing user. Status defaults to PENDING.
func (t *TaskUseCaseImpl) CreateTask(ctx context.Context, input api.CreateTaskInput) (*entities.Task, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodCreateTask),
		zap.Int64("user_id", input.UserID))
	log.Debug(ctx, msgCreatingTask)

	task, err := newTask(input)
	if err != nil {
		log.Debug(ctx, msgInvalidTaskInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTask, err)
	}

	if err := t.ensureOwnerExists(ctx, log, input.UserID); err != nil {
		return nil, err
	}

	created, err := t.taskRepo.Create(ctx, task)
	if err != nil {
		log.Error(ctx, msgErrCreateTask, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingTask, err)
	}

	log.Info(ctx, msgTaskCreated, zap.String("task_id", created.ID))
	return created, nil
}

// GetTaskByID returns a live task together with its owner.
func (t *TaskUseCaseImpl) GetTaskByID(ctx context.Context, id string) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetTaskByID), zap.String("task_id", id))

	task, err := t.findTask(ctx, log, id)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, msgTaskRetrieved)
	return task, nil
}

// GetTasksByUserID lists a user's live tasks newest first. An unknown user is
// reported as not found rather than as an empty list.
func (t *TaskUseCaseImpl) GetTasksByUserID(ctx context.Context, userID int64, filter api.TaskFilter) ([]*entities.Task, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGetTasksByUserID),
		zap.Int64("user_id", userID))

	if filter.Status != nil && !filter.Status.IsValid() {
		log.Debug(ctx, msgInvalidTaskInput, zap.String("status", string(*filter.Status)))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTask, entities.ErrInvalidTaskStatus)
	}

	if err := t.ensureOwnerExists(ctx, log, userID); err != nil {
		return nil, err
	}

	tasks, err := t.taskRepo.FindByUserID(ctx, userID, filter.Status)
	if err != nil {
		log.Error(ctx, msgErrListTasks, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingTasks, err)
	}

	log.Debug(ctx, msgTasksRetrieved, zap.Int("count", len(tasks)))
	return tasks, nil
}

// GetAllTasks lists every live task newest first.
func (t *TaskUseCaseImpl) GetAllTasks(ctx context.Context) ([]*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetAllTasks))

	tasks, err := t.taskRepo.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrListTasks, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingTasks, err)
	}

	log.Debug(ctx, msgTasksRetrieved, zap.Int("count", len(tasks)))
	return tasks, nil
}

// UpdateTask applies the supplied fields to a live task. An omitted due date
// keeps the stored one.
func (t *TaskUseCaseImpl) UpdateTask(ctx context.Context, id string, input api.UpdateTaskInput) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateTask), zap.String("task_id", id))

	dueDate, err := parseOptionalDueDate(input.DueDate)
	if err == nil {
		err = validateTaskUpdate(input)
	}
	if err != nil {
		log.Debug(ctx, msgInvalidTaskInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTask, err)
	}

	task, err := t.findTask(ctx, log, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if dueDate != nil {
		task.DueDate = dueDate
	}

	updated, err := t.taskRepo.Update(ctx, task)
	if err != nil {
		log.Error(ctx, msgErrUpdateTask, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingTask, err)
	}

	log.Info(ctx, msgTaskUpdated)
	return updated, nil
}

// DeleteTask soft-deletes a live task. Deleting it twice reports not found.
func (t *TaskUseCaseImpl) DeleteTask(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteTask), zap.String("task_id", id))

	if _, err := t.findTask(ctx, log, id); err != nil {
		return err
	}

	if err := t.taskRepo.SoftDelete(ctx, id); err != nil {
		log.Error(ctx, msgErrSoftDeleteTask, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingTask, err)
	}

	log.Info(ctx, msgTaskDeleted)
	return nil
}

func (t *TaskUseCaseImpl) findTask(ctx context.Context, log *logger.Logger, id string) (*entities.Task, error) {
	task, err := t.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			log.Debug(ctx, msgTaskNotFound)
		} else {
			log.Error(ctx, msgErrFindTask, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingTask, err)
	}
	return task, nil
}

func (t *TaskUseCaseImpl) ensureOwnerExists(ctx context.Context, log *logger.Logger, userID int64) error {
	if _, err := t.userRepo.FindByIdentifyNumber(ctx, userID); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			log.Debug(ctx, msgOwnerNotFound)
		} else {
			log.Error(ctx, msgErrFindOwner, zap.Error(err))
		}
		return fmt.Errorf("%s: %w", errCtxFindingOwner, err)
	}
	return nil
}

func newTask(input api.CreateTaskInput) (*entities.Task, error) {
	if err := entities.ValidateTitle(input.Title); err != nil {
		return nil, err
	}

	status := entities.TaskStatusPending
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, entities.ErrInvalidTaskStatus
		}
		status = *input.Status
	}

	dueDate, err := parseOptionalDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	return &entities.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		DueDate:     dueDate,
		UserID:      input.UserID,
		IsDeleted:   false,
	}, nil
}

func validateTaskUpdate(input api.UpdateTaskInput) error {
	if input.Title != nil {
		if err := entities.ValidateTitle(*input.Title); err != nil {
			return err
		}
	}
	if input.Status != nil && !input.Status.IsValid() {
		return entities.ErrInvalidTaskStatus
	}
	return nil
}

// parseOptionalDueDate returns nil for an absent or empty value.
func parseOptionalDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	dueDate, err := entities.ParseDueDate(*raw)
	if err != nil {
		return nil, err
	}
	return &dueDate, nil
}
