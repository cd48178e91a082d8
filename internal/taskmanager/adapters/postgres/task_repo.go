package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taskmanager/internal/taskmanager/domain/entities"
	"taskmanager/internal/taskmanager/ports/repositories"
	"taskmanager/pkg/logger"
)

// Every task read joins the owning user.
const taskSelect = `
        SELECT t.id, t.title, t.description, t.status, t.due_date, t.user_id,
               t.created_at, t.updated_at, t.is_deleted,
               u.id, u.identify_number, u.email, u.name, u.created_at`

const (
	queryCreateTask = `
        WITH t AS (
            INSERT INTO tasks (title, description, status, due_date, user_id)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING *
        )` + taskSelect + `
        FROM t
        JOIN users u ON u.identify_number = t.user_id`

	queryFindTaskByID = taskSelect + `
        FROM tasks t
        JOIN users u ON u.identify_number = t.user_id
        WHERE t.id = $1 AND t.is_deleted = FALSE`

	queryFindTasksByUserID = taskSelect + `
        FROM tasks t
        JOIN users u ON u.identify_number = t.user_id
        WHERE t.user_id = $1 AND t.is_deleted = FALSE`

	queryFilterByStatus = `
        AND t.status = $2`

	queryFindAllTasks = taskSelect + `
        FROM tasks t
        JOIN users u ON u.identify_number = t.user_id
        WHERE t.is_deleted = FALSE`

	queryNewestFirst = `
        ORDER BY t.created_at DESC, t.id`

	queryUpdateTask = `
        WITH t AS (
            UPDATE tasks
            SET title = $2, description = $3, status = $4, due_date = $5, updated_at = NOW()
            WHERE id = $1 AND is_deleted = FALSE
            RETURNING *
        )` + taskSelect + `
        FROM t
        JOIN users u ON u.identify_number = t.user_id`

	querySoftDeleteTask = `
        UPDATE tasks
        SET is_deleted = TRUE, updated_at = NOW()
        WHERE id = $1 AND is_deleted = FALSE`

	queryDeleteTask = `
        DELETE FROM tasks
        WHERE id = $1`
)

// TaskRepository implements repositories.TaskRepository for Postgres.
type TaskRepository struct {
	pool PgxPoolInterface
}

// NewTaskRepository returns a Postgres task repository.
func NewTaskRepository(pool PgxPoolInterface) repositories.TaskRepository {
	return &TaskRepository{pool: pool}
}

func scanTask(row pgx.Row) (*entities.Task, error) {
	var (
		task entities.Task
		user entities.User
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.DueDate,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.IsDeleted,
		&user.ID,
		&user.IdentifyNumber,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	task.User = &user
	return &task, nil
}

// Create inserts task and returns it with its owner. A missing owner is
// reported as entities.ErrUserNotFound.
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "Create"))

	created, err := scanTask(r.pool.QueryRow(ctx, queryCreateTask,
		task.Title,
		task.Description,
		string(task.Status),
		task.DueDate,
		task.UserID,
	))
	if err != nil {
		if domainErr := translateError(err); domainErr != nil {
			log.Debug(ctx, "task violates a constraint", zap.Error(err))
			return nil, domainErr
		}
		log.Error(ctx, "error creating task", zap.Error(err))
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return created, nil
}

// FindByID finds a live task by id.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "FindByID"))

	task, err := scanTask(r.pool.QueryRow(ctx, queryFindTaskByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			log.Debug(ctx, "task not found", zap.String("id", id))
			return nil, entities.ErrTaskNotFound
		}
		log.Error(ctx, "error finding task by id", zap.Error(err))
		return nil, fmt.Errorf("error querying task by id: %w", err)
	}

	return task, nil
}

// FindByUserID lists a user's live tasks newest first, optionally by status.
func (r *TaskRepository) FindByUserID(ctx context.Context, userID int64, status *entities.TaskStatus) ([]*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "FindByUserID"))

	query := queryFindTasksByUserID
	args := []any{userID}
	if status != nil {
		query += queryFilterByStatus
		args = append(args, string(*status))
	}
	query += queryNewestFirst

	return r.list(ctx, log, query, args...)
}

// FindAll lists every live task newest first.
func (r *TaskRepository) FindAll(ctx context.Context) ([]*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "FindAll"))

	return r.list(ctx, log, queryFindAllTasks+queryNewestFirst)
}

func (r *TaskRepository) list(ctx context.Context, log *logger.Logger, query string, args ...any) ([]*entities.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error querying tasks", zap.Error(err))
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*entities.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error(ctx, "error scanning task", zap.Error(err))
			return nil, fmt.Errorf("error scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating tasks", zap.Error(err))
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// Update writes the mutable fields of a live task and bumps updated_at.
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "Update"))

	updated, err := scanTask(r.pool.QueryRow(ctx, queryUpdateTask,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		task.DueDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			log.Debug(ctx, "task not found for update", zap.String("id", task.ID))
			return nil, entities.ErrTaskNotFound
		}
		if domainErr := translateError(err); domainErr != nil {
			log.Debug(ctx, "task update violates a constraint", zap.Error(err))
			return nil, domainErr
		}
		log.Error(ctx, "error updating task", zap.Error(err))
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return updated, nil
}

// SoftDelete flags a live task as deleted. The row is kept.
func (r *TaskRepository) SoftDelete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "SoftDelete"))

	return r.exec(ctx, log, querySoftDeleteTask, id)
}

// Delete removes a task row regardless of its soft-delete flag.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "Delete"))

	return r.exec(ctx, log, queryDeleteTask, id)
}

func (r *TaskRepository) exec(ctx context.Context, log *logger.Logger, query, id string) error {
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		if isInvalidUUID(err) {
			return entities.ErrTaskNotFound
		}
		log.Error(ctx, "error deleting task", zap.Error(err))
		return fmt.Errorf("error deleting task: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "task not found for deletion", zap.String("id", id))
		return entities.ErrTaskNotFound
	}

	return nil
}
