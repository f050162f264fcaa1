package dto

import (
	"fmt"
	"time"

	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/utils"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorDTO   `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorDTO describes a failed request.
type ErrorDTO struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// PaginationResponse is the pagination metadata of list responses.
type PaginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PagedList wraps one page of items.
type PagedList[T any] struct {
	Items      []T                `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// NewPagedList builds a page with its metadata.
func NewPagedList[T any](items []T, page, pageSize int, total int64) *PagedList[T] {
	if items == nil {
		items = []T{}
	}
	return &PagedList[T]{
		Items: items,
		Pagination: PaginationResponse{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: utils.TotalPages(total, pageSize),
		},
	}
}

// SuccessResponse creates a success envelope.
func SuccessResponse(data interface{}, requestID string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		RequestID: requestID,
		Timestamp: time.Now().Unix(),
	}
}

// ErrorResponse creates an error envelope. Errors that are not AppErrors are
// reported as internal errors without leaking their text.
func ErrorResponse(err error, requestID string) *APIResponse {
	errorDTO := &ErrorDTO{
		Code:    errors.CodeInternal,
		Message: "Internal server error",
	}
	if appErr, ok := errors.As(err); ok {
		errorDTO.Code = appErr.Code
		errorDTO.Message = appErr.Message
		if len(appErr.Metadata) > 0 {
			errorDTO.Details = make(map[string]string, len(appErr.Metadata))
			for k, v := range appErr.Metadata {
				errorDTO.Details[k] = fmt.Sprint(v)
			}
		}
	}
	return &APIResponse{
		Success:   false,
		Error:     errorDTO,
		RequestID: requestID,
		Timestamp: time.Now().Unix(),
	}
}
