package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced in the response envelope. These are part of the API
// contract consumed by the admin console — do not rename casually.
const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeAcademyNotFound    = "ACADEMY_NOT_FOUND"
	CodeStudentNotFound    = "STUDENT_NOT_FOUND"
	CodeInstructorNotFound = "INSTRUCTOR_NOT_FOUND"
	CodeLectureNotFound    = "LECTURE_NOT_FOUND"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeMessageNotFound    = "MESSAGE_NOT_FOUND"
	CodeFileNotFound       = "FILE_NOT_FOUND"
	CodeDuplicateEntry     = "DUPLICATE_ENTRY"
	CodeInternalError      = "INTERNAL_SERVER_ERROR"
)

// Success response (default 200)
func Success(c *fiber.Ctx, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, data)
}

// Success response with custom status (e.g. 201 for created)
func SuccessWithCode(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// List response: items + pagination block under data.
func SuccessList(c *fiber.Ctx, items interface{}, p Pagination) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"items":      items,
			"pagination": p,
		},
	})
}

// Error response without field details.
func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// Error response with per-field messages (validation, conflicts).
func ErrorWithFields(c *fiber.Ctx, status int, code, message string, fields map[string]string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    code,
			"message": message,
			"fields":  fields,
		},
	})
}

// ValidationError maps validator.v10 errors to a 400 with per-field tags.
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return Error(c, fiber.StatusBadRequest, CodeValidationError, "Invalid input")
	}

	fields := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}
	return ErrorWithFields(c, fiber.StatusBadRequest, CodeValidationError, "Validation failed", fields)
}
