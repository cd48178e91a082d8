// Package app implements the user and task use cases.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"taskmanager/internal/taskmanager/domain/entities"
	"taskmanager/internal/taskmanager/ports/api"
	"taskmanager/internal/taskmanager/ports/repositories"
	"taskmanager/pkg/logger"
)

const (
	methodCreateUser  = "CreateUser"
	methodGetUserByID = "GetUserByID"
	methodGetAllUsers = "GetAllUsers"
	methodUpdateUser  = "UpdateUser"
	methodDeleteUser  = "DeleteUser"

	msgCreatingUser     = "creating user"
	msgEmailTaken       = "user with this email already exists"
	msgIdentifyNumTaken = "user with this identify number already exists"
	msgUserCreated      = "user created successfully"
	msgUserRetrieved    = "user retrieved"
	msgUsersRetrieved   = "users retrieved"
	msgUpdatingUser     = "updating user"
	msgUserUpdated      = "user updated successfully"
	msgUserDeleted      = "user deleted successfully"
	msgUserNotFound     = "user not found"
	msgInvalidUserInput = "invalid user input"
	msgErrCheckEmail    = "failed to check email uniqueness"
	msgErrCheckIdentify = "failed to check identify number uniqueness"
	msgErrCreateUser    = "failed to create user"
	msgErrFindUser      = "failed to find user"
	msgErrListUsers     = "failed to list users"
	msgErrUpdateUser    = "failed to update user"
	msgErrDeleteUser    = "failed to delete user"

	errCtxValidatingUser  = "validating user"
	errCtxCheckingEmail   = "checking email uniqueness"
	errCtxCheckingIdentNo = "checking identify number uniqueness"
	errCtxCreatingUser    = "creating user"
	errCtxFindingUser     = "finding user"
	errCtxListingUsers    = "listing users"
	errCtxUpdatingUser    = "updating user"
	errCtxDeletingUser    = "deleting user"
)

// UserUseCaseImpl implements api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase returns a user use case backed by userRepo.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
	}
}

// CreateUser stores a new user after checking that both the email and the
// identify number are free.
func (u *UserUseCaseImpl) CreateUser(ctx context.Context, input api.CreateUserInput) (*entities.User, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodCreateUser),
		zap.Int64("identify_number", input.IdentifyNumber))
	log.Debug(ctx, msgCreatingUser)

	if err := validateNewUser(input); err != nil {
		log.Debug(ctx, msgInvalidUserInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	if err := u.ensureEmailFree(ctx, input.Email); err != nil {
		log.Debug(ctx, msgEmailTaken, zap.Error(err))
		return nil, err
	}

	_, err := u.userRepo.FindByIdentifyNumber(ctx, input.IdentifyNumber)
	switch {
	case err == nil:
		log.Debug(ctx, msgIdentifyNumTaken)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingIdentNo, entities.ErrIdentifyNumberAlreadyExists)
	case !errors.Is(err, entities.ErrUserNotFound):
		log.Error(ctx, msgErrCheckIdentify, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingIdentNo, err)
	}

	created, err := u.userRepo.Create(ctx, &entities.User{
		IdentifyNumber: input.IdentifyNumber,
		Email:          input.Email,
		Name:           input.Name,
	})
	if err != nil {
		if errors.Is(err, entities.ErrConflict) {
			log.Debug(ctx, msgErrCreateUser, zap.Error(err))
		} else {
			log.Error(ctx, msgErrCreateUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.String("user_id", created.ID))
	return created, nil
}

// GetUserByID returns the user with the given identify number.
func (u *UserUseCaseImpl) GetUserByID(ctx context.Context, identifyNumber int64) (*entities.User, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGetUserByID),
		zap.Int64("identify_number", identifyNumber))

	user, err := u.findUser(ctx, log, identifyNumber)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, msgUserRetrieved)
	return user, nil
}

// GetAllUsers returns every user in storage order.
func (u *UserUseCaseImpl) GetAllUsers(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetAllUsers))

	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrListUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}

	log.Debug(ctx, msgUsersRetrieved, zap.Int("count", len(users)))
	return users, nil
}

// UpdateUser applies the supplied fields to an existing user. A changed email
// is checked for uniqueness first.
func (u *UserUseCaseImpl) UpdateUser(ctx context.Context, identifyNumber int64, input api.UpdateUserInput) (*entities.User, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUpdateUser),
		zap.Int64("identify_number", identifyNumber))
	log.Debug(ctx, msgUpdatingUser)

	if err := validateUserUpdate(input); err != nil {
		log.Debug(ctx, msgInvalidUserInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	user, err := u.findUser(ctx, log, identifyNumber)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := u.ensureEmailFree(ctx, *input.Email); err != nil {
			log.Debug(ctx, msgEmailTaken, zap.Error(err))
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}

	updated, err := u.userRepo.Update(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgUserUpdated)
	return updated, nil
}

// DeleteUser removes an existing user. Its tasks go with it at the storage layer.
func (u *UserUseCaseImpl) DeleteUser(ctx context.Context, identifyNumber int64) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteUser),
		zap.Int64("identify_number", identifyNumber))

	if _, err := u.findUser(ctx, log, identifyNumber); err != nil {
		return err
	}

	if err := u.userRepo.Delete(ctx, identifyNumber); err != nil {
		log.Error(ctx, msgErrDeleteUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}

func (u *UserUseCaseImpl) findUser(ctx context.Context, log *logger.Logger, identifyNumber int64) (*entities.User, error) {
	user, err := u.userRepo.FindByIdentifyNumber(ctx, identifyNumber)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			log.Debug(ctx, msgUserNotFound)
		} else {
			log.Error(ctx, msgErrFindUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	return user, nil
}

func (u *UserUseCaseImpl) ensureEmailFree(ctx context.Context, email string) error {
	_, err := u.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return fmt.Errorf("%s: %w", errCtxCheckingEmail, entities.ErrEmailAlreadyExists)
	case errors.Is(err, entities.ErrUserNotFound):
		return nil
	default:
		logger.Log(ctx).Error(ctx, msgErrCheckEmail, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	}
}

func validateNewUser(input api.CreateUserInput) error {
	if err := entities.ValidateIdentifyNumber(input.IdentifyNumber); err != nil {
		return err
	}
	if err := entities.ValidateEmail(input.Email); err != nil {
		return err
	}
	return entities.ValidateName(input.Name)
}

func validateUserUpdate(input api.UpdateUserInput) error {
	if input.Email != nil {
		if err := entities.ValidateEmail(*input.Email); err != nil {
			return err
		}
	}
	if input.Name != nil {
		return entities.ValidateName(*input.Name)
	}
	return nil
}
