package middleware

import "github.com/gofiber/fiber/v2"

// Every API response uses the same envelope:
// {"status": "success"|"error", "errors": {field: message}, "data": {...}}

// SuccessResponse writes a success envelope with the given data payload.
func SuccessResponse(c *fiber.Ctx, data interface{}) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"errors": fiber.Map{},
		"data":   data,
	})
}

// ErrorResponse writes an error envelope with per-field error messages.
func ErrorResponse(c *fiber.Ctx, statusCode int, errors map[string]string) error {
	if errors == nil {
		errors = map[string]string{}
	}
	return c.Status(statusCode).JSON(fiber.Map{
		"status": "error",
		"errors": errors,
		"data":   fiber.Map{},
	})
}

// ValidationErrorResponse reports field validation failures.
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return ErrorResponse(c, fiber.StatusUnprocessableEntity, errors)
}

// NotFoundResponse reports a missing entity under the given field name.
func NotFoundResponse(c *fiber.Ctx, field, message string) error {
	return ErrorResponse(c, fiber.StatusNotFound, map[string]string{field: message})
}

// InternalErrorResponse reports an unexpected failure. Unlike the legacy API
// this never masks internal errors behind a success envelope.
func InternalErrorResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusInternalServerError, map[string]string{"detail": message})
}
