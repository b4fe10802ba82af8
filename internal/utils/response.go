package utils

import (
	"net/http"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/gin-gonic/gin"
)

// Response is the envelope returned by every JSON endpoint. Success is always
// present, the remaining fields only when relevant.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success envelope. data may be nil.
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// NewListResponse creates a success envelope carrying a slice and its length.
func NewListResponse(data interface{}, count int) Response {
	return Response{
		Success: true,
		Data:    data,
		Count:   &count,
	}
}

// NewErrorResponse creates a failure envelope.
func NewErrorResponse(message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation, apperr.InvalidReference:
		return http.StatusBadRequest
	case apperr.InvalidCredentials, apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

const internalErrorMessage = "Internal server error"

// ErrorResponse builds the envelope and status for err.
func ErrorResponse(err error) (int, Response) {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)
	if kind == apperr.Internal {
		resp := NewErrorResponse(internalErrorMessage)
		resp.Error = err.Error()
		return status, resp
	}
	return status, NewErrorResponse(apperr.MessageOf(err, kind.String()))
}

// RespondError writes the envelope for err. Internal failures are attached
// to the context so the request logger records them.
func RespondError(c *gin.Context, err error) {
	status, resp := ErrorResponse(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, resp)
}

// AbortWithError is RespondError for middleware.
func AbortWithError(c *gin.Context, err error) {
	RespondError(c, err)
	c.Abort()
}
