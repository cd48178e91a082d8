// Package response writes JSON bodies and maps domain errors to HTTP statuses.
package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"taskmanager/internal/taskmanager/adapters/http/validator"
	"taskmanager/internal/taskmanager/domain/entities"
)

// Response messages.
const (
	MsgValidationFailed   = "validation failed"
	MsgInvalidRequestBody = "invalid request body"
	MsgNotFound           = "resource not found"
	MsgConflict           = "resource already exists"
	MsgInternalError      = "internal server error"
	MsgRouteNotFound      = "route not found"
	MsgTooManyRequests    = "too many requests"

	errSendResponse = "failed to send response"
)

var validationFields = []struct {
	err   error
	field string
}{
	{entities.ErrEmptyTitle, "title"},
	{entities.ErrTitleTooLong, "title"},
	{entities.ErrInvalidTaskStatus, "status"},
	{entities.ErrInvalidDueDate, "due_date"},
	{entities.ErrInvalidIdentifyNumber, "identify_number"},
	{entities.ErrNameTooShort, "name"},
	{entities.ErrNameTooLong, "name"},
	{entities.ErrInvalidEmail, "email"},
	{entities.ErrEmailTooLong, "email"},
	{entities.ErrValueTooLong, "request"},
}

var specificErrors = []error{
	entities.ErrUserNotFound,
	entities.ErrTaskNotFound,
	entities.ErrEmailAlreadyExists,
	entities.ErrIdentifyNumberAlreadyExists,
}

// JSON writes body with status.
func JSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("%s: %w", errSendResponse, err)
	}
	return nil
}

// Error writes {"error": message} with status.
func Error(ctx fiber.Ctx, status int, message string) error {
	return JSON(ctx, status, fiber.Map{"error": message})
}

// ValidationFailed writes a 400 with a field to message map.
func ValidationFailed(ctx fiber.Ctx, fields map[string]string) error {
	return JSON(ctx, fiber.StatusBadRequest, fiber.Map{
		"error":  MsgValidationFailed,
		"fields": fields,
	})
}

// BindError answers a failed Bind call: field errors for validation, a plain 400 otherwise.
func BindError(ctx fiber.Ctx, err error) error {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return ValidationFailed(ctx, verr.Fields)
	}
	return Error(ctx, fiber.StatusBadRequest, MsgInvalidRequestBody)
}

// HandleError maps err to a status code and writes the response.
func HandleError(ctx fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, entities.ErrValidation):
		field, message := validationField(err)
		return ValidationFailed(ctx, map[string]string{field: message})
	case errors.Is(err, entities.ErrNotFound):
		return Error(ctx, fiber.StatusNotFound, specificMessage(err, MsgNotFound))
	case errors.Is(err, entities.ErrConflict):
		return Error(ctx, fiber.StatusConflict, specificMessage(err, MsgConflict))
	case errors.As(err, &fiberErr):
		return Error(ctx, fiberErr.Code, fiberErr.Message)
	default:
		return Error(ctx, fiber.StatusInternalServerError, MsgInternalError)
	}
}

func validationField(err error) (string, string) {
	for _, vf := range validationFields {
		if errors.Is(err, vf.err) {
			return vf.field, strings.TrimPrefix(vf.err.Error(), entities.ErrValidation.Error()+": ")
		}
	}
	return "request", entities.ErrValidation.Error()
}

func specificMessage(err error, fallback string) string {
	for _, known := range specificErrors {
		if errors.Is(err, known) {
			return strings.TrimPrefix(known.Error(), entities.ErrConflict.Error()+": ")
		}
	}
	return fallback
}
