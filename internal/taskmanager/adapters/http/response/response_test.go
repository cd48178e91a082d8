package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/taskmanager/adapters/http/response"
	"taskmanager/internal/taskmanager/adapters/http/validator"
	"taskmanager/internal/taskmanager/domain/entities"
)

func serve(t *testing.T, handler fiber.Handler) (int, map[string]any) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantFields map[string]any
	}{
		{
			name:       "user not found",
			err:        fmt.Errorf("finding user: %w", entities.ErrUserNotFound),
			wantStatus: http.StatusNotFound,
			wantError:  "user not found",
		},
		{
			name:       "task not found",
			err:        fmt.Errorf("finding task: %w", entities.ErrTaskNotFound),
			wantStatus: http.StatusNotFound,
			wantError:  "task not found",
		},
		{
			name:       "generic not found",
			err:        entities.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  response.MsgNotFound,
		},
		{
			name:       "email conflict",
			err:        fmt.Errorf("creating user: %w", entities.ErrEmailAlreadyExists),
			wantStatus: http.StatusConflict,
			wantError:  "email already exists",
		},
		{
			name:       "identify number conflict",
			err:        entities.ErrIdentifyNumberAlreadyExists,
			wantStatus: http.StatusConflict,
			wantError:  "identify number already exists",
		},
		{
			name:       "generic conflict",
			err:        entities.ErrConflict,
			wantStatus: http.StatusConflict,
			wantError:  response.MsgConflict,
		},
		{
			name:       "empty title",
			err:        fmt.Errorf("validating task: %w", entities.ErrEmptyTitle),
			wantStatus: http.StatusBadRequest,
			wantError:  response.MsgValidationFailed,
			wantFields: map[string]any{"title": "title cannot be empty"},
		},
		{
			name:       "invalid due date",
			err:        entities.ErrInvalidDueDate,
			wantStatus: http.StatusBadRequest,
			wantError:  response.MsgValidationFailed,
			wantFields: map[string]any{"due_date": "invalid due date"},
		},
		{
			name:       "name too long",
			err:        fmt.Errorf("validating user: %w", entities.ErrNameTooLong),
			wantStatus: http.StatusBadRequest,
			wantError:  response.MsgValidationFailed,
			wantFields: map[string]any{"name": "name must be at most 255 characters"},
		},
		{
			name:       "column width exceeded in storage",
			err:        fmt.Errorf("updating user: %w", entities.ErrValueTooLong),
			wantStatus: http.StatusBadRequest,
			wantError:  response.MsgValidationFailed,
			wantFields: map[string]any{"request": "value too long"},
		},
		{
			name:       "fiber error",
			err:        fiber.NewError(fiber.StatusTeapot, "short and stout"),
			wantStatus: http.StatusTeapot,
			wantError:  "short and stout",
		},
		{
			name:       "unknown error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantError:  response.MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(t, func(c fiber.Ctx) error {
				return response.HandleError(c, tt.err)
			})

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantError, body["error"])
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, body["fields"])
			}
		})
	}
}

func TestBindError(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		status, body := serve(t, func(c fiber.Ctx) error {
			return response.BindError(c, &validator.ValidationError{Fields: map[string]string{"name": "name is required"}})
		})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, response.MsgValidationFailed, body["error"])
		assert.Equal(t, map[string]any{"name": "name is required"}, body["fields"])
	})

	t.Run("decode error", func(t *testing.T) {
		status, body := serve(t, func(c fiber.Ctx) error {
			return response.BindError(c, errors.New("unexpected EOF"))
		})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, response.MsgInvalidRequestBody, body["error"])
	})
}
