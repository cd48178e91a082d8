package entities

import (
	"errors"
	"fmt"
)

// Error categories. Transports map them to response codes with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// Domain errors.
var (
	ErrUserNotFound                = fmt.Errorf("user %w", ErrNotFound)
	ErrTaskNotFound                = fmt.Errorf("task %w", ErrNotFound)
	ErrEmailAlreadyExists          = fmt.Errorf("%w: email already exists", ErrConflict)
	ErrIdentifyNumberAlreadyExists = fmt.Errorf("%w: identify number already exists", ErrConflict)
	ErrEmptyTitle                  = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrTitleTooLong                = fmt.Errorf("%w: title must be at most %d characters", ErrValidation, MaxTitleLength)
	ErrInvalidTaskStatus           = fmt.Errorf("%w: invalid task status", ErrValidation)
	ErrInvalidDueDate              = fmt.Errorf("%w: invalid due date", ErrValidation)
	ErrInvalidIdentifyNumber       = fmt.Errorf("%w: identify number must be positive", ErrValidation)
	ErrNameTooShort                = fmt.Errorf("%w: name must be at least %d characters", ErrValidation, MinNameLength)
	ErrNameTooLong                 = fmt.Errorf("%w: name must be at most %d characters", ErrValidation, MaxNameLength)
	ErrInvalidEmail                = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmailTooLong                = fmt.Errorf("%w: email must be at most %d characters", ErrValidation, MaxEmailLength)
	ErrValueTooLong                = fmt.Errorf("%w: value too long", ErrValidation)
)
