package handler

import "github.com/mealplan/backend/internal/interfaces/http/dto"

// APIResponse is the typed success envelope referenced by the swagger
// annotations. Handlers respond with dto.Response at runtime; this type
// only exists so the generated docs show the concrete data shape.
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse is the error envelope referenced by the swagger annotations.
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}
