// Package users contains the HTTP handlers for user management.
package users

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskmanager/internal/taskmanager/adapters/http/dto"
	"taskmanager/internal/taskmanager/adapters/http/response"
	"taskmanager/internal/taskmanager/ports/api"
	"taskmanager/pkg/logger"
)

const (
	LogHandlerCreateUser  = "handling create user request"
	LogHandlerGetUser     = "handling get user request"
	LogHandlerGetAllUsers = "handling list users request"
	LogHandlerUpdateUser  = "handling update user request"
	LogHandlerDeleteUser  = "handling delete user request"

	ErrMsgInvalidUserID = "invalid user id"

	MsgUserDeleted = "User deleted successfully"
)

// Handler serves the /users routes.
type Handler struct {
	users api.UserUseCase
}

// NewHandler creates a user handler.
func NewHandler(users api.UserUseCase) *Handler {
	return &Handler{users: users}
}

// CreateUser handles POST /users.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(requestCtx, LogHandlerCreateUser)

	var req dto.CreateUserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, response.MsgInvalidRequestBody, zap.Error(err))
		return response.BindError(ctx, err)
	}

	user, err := h.users.CreateUser(requestCtx, req.ToInput())
	if err != nil {
		log.Debug(requestCtx, "failed to create user", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusCreated, user)
}

// GetAllUsers handles GET /users.
func (h *Handler) GetAllUsers(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetAllUsers"))
	log.Debug(requestCtx, LogHandlerGetAllUsers)

	list, err := h.users.GetAllUsers(requestCtx)
	if err != nil {
		log.Error(requestCtx, "failed to list users", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, list)
}

// GetUserByID handles GET /users/:id, where id is the identify number.
func (h *Handler) GetUserByID(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetUserByID"))
	log.Debug(requestCtx, LogHandlerGetUser)

	id, ok := parseID(ctx, "id")
	if !ok {
		return response.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	user, err := h.users.GetUserByID(requestCtx, id)
	if err != nil {
		log.Debug(requestCtx, "failed to get user", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, user)
}

// UpdateUser handles PUT and PATCH /users/:id.
func (h *Handler) UpdateUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateUser"))
	log.Debug(requestCtx, LogHandlerUpdateUser)

	id, ok := parseID(ctx, "id")
	if !ok {
		return response.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	var req dto.UpdateUserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, response.MsgInvalidRequestBody, zap.Error(err))
		return response.BindError(ctx, err)
	}

	user, err := h.users.UpdateUser(requestCtx, id, req.ToInput())
	if err != nil {
		log.Debug(requestCtx, "failed to update user", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, user)
}

// DeleteUser handles DELETE /users/:id.
func (h *Handler) DeleteUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteUser"))
	log.Debug(requestCtx, LogHandlerDeleteUser)

	id, ok := parseID(ctx, "id")
	if !ok {
		return response.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	if err := h.users.DeleteUser(requestCtx, id); err != nil {
		log.Debug(requestCtx, "failed to delete user", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.MessageResponse{Message: MsgUserDeleted})
}

func parseID(ctx fiber.Ctx, param string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
