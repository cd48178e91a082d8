// Package tasks contains the HTTP handlers for task management.
package tasks

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskmanager/internal/taskmanager/adapters/http/dto"
	"taskmanager/internal/taskmanager/adapters/http/response"
	"taskmanager/internal/taskmanager/ports/api"
	"taskmanager/pkg/logger"
)

const (
	LogHandlerCreateTask       = "handling create task request"
	LogHandlerGetTask          = "handling get task request"
	LogHandlerGetAllTasks      = "handling list tasks request"
	LogHandlerGetTasksByUserID = "handling list user tasks request"
	LogHandlerUpdateTask       = "handling update task request"
	LogHandlerDeleteTask       = "handling delete task request"

	ErrMsgInvalidTaskID = "invalid task id"
	ErrMsgInvalidUserID = "invalid user id"

	MsgTaskDeleted = "Task deleted successfully"
)

// Handler serves the /tasks routes.
type Handler struct {
	tasks api.TaskUseCase
}

// NewHandler creates a task handler.
func NewHandler(tasks api.TaskUseCase) *Handler {
	return &Handler{tasks: tasks}
}

// CreateTask handles POST /tasks.
func (h *Handler) CreateTask(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateTask"))
	log.Debug(requestCtx, LogHandlerCreateTask)

	var req dto.CreateTaskRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, response.MsgInvalidRequestBody, zap.Error(err))
		return response.BindError(ctx, err)
	}

	task, err := h.tasks.CreateTask(requestCtx, req.ToInput())
	if err != nil {
		log.Debug(requestCtx, "failed to create task", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusCreated, task)
}

// GetAllTasks handles GET /tasks.
func (h *Handler) GetAllTasks(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetAllTasks"))
	log.Debug(requestCtx, LogHandlerGetAllTasks)

	list, err := h.tasks.GetAllTasks(requestCtx)
	if err != nil {
		log.Error(requestCtx, "failed to list tasks", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, list)
}

// GetTasksByUserID handles GET /tasks/user/:userId with an optional status query.
func (h *Handler) GetTasksByUserID(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetTasksByUserID"))
	log.Debug(requestCtx, LogHandlerGetTasksByUserID)

	userID, err := strconv.ParseInt(ctx.Params("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return response.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	var query dto.TaskFilterQuery
	if err := ctx.Bind().Query(&query); err != nil {
		log.Debug(requestCtx, "invalid task filter", zap.Error(err))
		return response.BindError(ctx, err)
	}

	list, err := h.tasks.GetTasksByUserID(requestCtx, userID, query.ToFilter())
	if err != nil {
		log.Debug(requestCtx, "failed to list user tasks", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, list)
}

// GetTaskByID handles GET /tasks/:id.
func (h *Handler) GetTaskByID(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetTaskByID"))
	log.Debug(requestCtx, LogHandlerGetTask)

	id, ok := taskID(ctx)
	if !ok {
		return response.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidTaskID)
	}

	task, err := h.tasks.GetTaskByID(requestCtx, id)
	if err != nil {
		log.Debug(requestCtx, "failed to get task", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, task)
}

// UpdateTask handles PUT and PATCH /tasks/:id.
func (h *Handler) UpdateTask(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateTask"))
	log.Debug(requestCtx, LogHandlerUpdateTask)

	id, ok := taskID(ctx)
	if !ok {
		return response.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidTaskID)
	}

	var req dto.UpdateTaskRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, response.MsgInvalidRequestBody, zap.Error(err))
		return response.BindError(ctx, err)
	}

	task, err := h.tasks.UpdateTask(requestCtx, id, req.ToInput())
	if err != nil {
		log.Debug(requestCtx, "failed to update task", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/:id. The task is soft deleted.
func (h *Handler) DeleteTask(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteTask"))
	log.Debug(requestCtx, LogHandlerDeleteTask)

	id, ok := taskID(ctx)
	if !ok {
		return response.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidTaskID)
	}

	if err := h.tasks.DeleteTask(requestCtx, id); err != nil {
		log.Debug(requestCtx, "failed to delete task", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.MessageResponse{Message: MsgTaskDeleted})
}

func taskID(ctx fiber.Ctx) (string, bool) {
	id := strings.TrimSpace(ctx.Params("id"))
	return id, id != ""
}
