// Package dto holds the request bodies accepted by the REST API.
package dto

import (
	"taskmanager/internal/taskmanager/ports/api"
)

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	IdentifyNumber int64  `json:"identify_number" validate:"required,gt=0"`
	Email          string `json:"email" validate:"required,max=255,email"`
	Name           string `json:"name" validate:"required,min=3,max=255"`
}

// ToInput converts the request into use case input.
func (r *CreateUserRequest) ToInput() api.CreateUserInput {
	return api.CreateUserInput{
		IdentifyNumber: r.IdentifyNumber,
		Email:          r.Email,
		Name:           r.Name,
	}
}

// UpdateUserRequest is the body of PUT/PATCH /users/:id. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Email *string `json:"email" validate:"omitempty,max=255,email"`
	Name  *string `json:"name" validate:"omitempty,min=3,max=255"`
}

// ToInput converts the request into use case input.
func (r *UpdateUserRequest) ToInput() api.UpdateUserInput {
	return api.UpdateUserInput{
		Email: r.Email,
		Name:  r.Name,
	}
}

// MessageResponse is returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
