package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// APIError carries an envelope error code through a gorm Transaction closure
// so the controller can write a consistent response after rollback.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string { return e.Message }

func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

func NotFound(code, message string) *APIError {
	return NewAPIError(fiber.StatusNotFound, code, message)
}

func Conflict(message string) *APIError {
	return NewAPIError(fiber.StatusConflict, CodeDuplicateEntry, message)
}

func BadRequest(message string) *APIError {
	return NewAPIError(fiber.StatusBadRequest, CodeValidationError, message)
}

func Internal(message string) *APIError {
	return NewAPIError(fiber.StatusInternalServerError, CodeInternalError, message)
}

// FromError converts an error bubbled out of a handler or Transaction into
// the response envelope. Unknown errors become a generic 500 so internals
// never leak to clients.
func FromError(c *fiber.Ctx, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Fields != nil {
			return ErrorWithFields(c, apiErr.Status, apiErr.Code, apiErr.Message, apiErr.Fields)
		}
		return Error(c, apiErr.Status, apiErr.Code, apiErr.Message)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, codeForStatus(fe.Code), fe.Message)
	}
	return Error(c, fiber.StatusInternalServerError, CodeInternalError, "Internal server error")
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return CodeValidationError
	case fiber.StatusConflict:
		return CodeDuplicateEntry
	default:
		return CodeInternalError
	}
}
