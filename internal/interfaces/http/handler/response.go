package handler

import "github.com/culinary/backend/internal/interfaces/http/dto"

// APIResponse is the typed envelope used in swagger annotations. At runtime
// handlers write dto.Response.
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse documents failures such as AGREEMENT_EXPIRED or NO_CHILD_ORDERS
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}
