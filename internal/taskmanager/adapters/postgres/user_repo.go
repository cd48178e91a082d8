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

const userColumns = `id, identify_number, email, name, created_at`

const (
	queryCreateUser = `
        INSERT INTO users (identify_number, email, name)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns

	queryFindUserByIdentifyNumber = `
        SELECT ` + userColumns + `
        FROM users
        WHERE identify_number = $1`

	queryFindUserByEmail = `
        SELECT ` + userColumns + `
        FROM users
        WHERE email = $1`

	queryFindAllUsers = `
        SELECT ` + userColumns + `
        FROM users
        ORDER BY created_at, identify_number`

	queryUpdateUser = `
        UPDATE users
        SET email = $2, name = $3
        WHERE identify_number = $1
        RETURNING ` + userColumns

	queryDeleteUser = `
        DELETE FROM users
        WHERE identify_number = $1`
)

// UserRepository implements repositories.UserRepository for Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository returns a Postgres user repository.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	if err := row.Scan(
		&user.ID,
		&user.IdentifyNumber,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts user. Unique violations come back as conflict errors.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	created, err := scanUser(r.pool.QueryRow(ctx, queryCreateUser, user.IdentifyNumber, user.Email, user.Name))
	if err != nil {
		if domainErr := translateError(err); domainErr != nil {
			log.Debug(ctx, "user violates a constraint", zap.Error(err))
			return nil, domainErr
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// FindByIdentifyNumber finds a user by identify number.
func (r *UserRepository) FindByIdentifyNumber(ctx context.Context, identifyNumber int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByIdentifyNumber"))

	user, err := scanUser(r.pool.QueryRow(ctx, queryFindUserByIdentifyNumber, identifyNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int64("identify_number", identifyNumber))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by identify number", zap.Error(err))
		return nil, fmt.Errorf("error querying user by identify number: %w", err)
	}

	return user, nil
}

// FindByEmail finds a user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	user, err := scanUser(r.pool.QueryRow(ctx, queryFindUserByEmail, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return user, nil
}

// FindAll returns every user in insertion order.
func (r *UserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindAll"))

	rows, err := r.pool.Query(ctx, queryFindAllUsers)
	if err != nil {
		log.Error(ctx, "error querying users", zap.Error(err))
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating users", zap.Error(err))
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Update writes email and name of the user with user.IdentifyNumber.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	updated, err := scanUser(r.pool.QueryRow(ctx, queryUpdateUser, user.IdentifyNumber, user.Email, user.Name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for update", zap.Int64("identify_number", user.IdentifyNumber))
			return nil, entities.ErrUserNotFound
		}
		if domainErr := translateError(err); domainErr != nil {
			log.Debug(ctx, "user update violates a constraint", zap.Error(err))
			return nil, domainErr
		}
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return updated, nil
}

// Delete removes a user. The schema cascades the delete to the user's tasks.
func (r *UserRepository) Delete(ctx context.Context, identifyNumber int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, queryDeleteUser, identifyNumber)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for deletion", zap.Int64("identify_number", identifyNumber))
		return entities.ErrUserNotFound
	}

	return nil
}
