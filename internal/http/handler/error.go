package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"coursedocs/internal/http/middleware"
	"coursedocs/internal/placement"
	"coursedocs/internal/review"
	"coursedocs/internal/service"
	"coursedocs/internal/validation"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeErrorFields(c, status, code, message, nil)
}

func writeErrorFields(c *fiber.Ctx, status int, code, message string, fields []fieldError) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Fields:  fields,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps domain errors to HTTP responses. Anything unrecognised is an opaque 500;
// its cause goes to the access log only.
func writeServiceError(c *fiber.Ctx, err error) error {
	if fes, ok := validation.FieldErrors(err); ok && len(fes) > 0 {
		fields := make([]fieldError, 0, len(fes))
		for _, fe := range fes {
			fields = append(fields, fieldError{Field: fe.Field, Code: string(fe.Code), Message: fe.Message})
		}
		code, msg := "VALIDATION_FAILED", "request validation failed"
		if len(fields) == 1 {
			code, msg = fields[0].Code, fields[0].Message
		}
		return writeErrorFields(c, fiber.StatusBadRequest, code, msg, fields)
	}

	switch {
	case errors.Is(err, review.ErrMissingRejectionReason):
		return writeErrorFields(c, fiber.StatusBadRequest, string(validation.CodeMissingRejectionReason),
			"rejection reason is required", []fieldError{{
				Field:   "rejection_reason",
				Code:    string(validation.CodeMissingRejectionReason),
				Message: "rejection reason is required",
			}})
	case errors.Is(err, review.ErrUnknownStatus), errors.Is(err, service.ErrInvalidStatus):
		return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "status must be pending, approved or rejected")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrCourseNotFound):
		return writeError(c, fiber.StatusNotFound, "COURSE_NOT_FOUND", "course not found")
	case errors.Is(err, placement.ErrNoDepartmentCoverage):
		return writeError(c, fiber.StatusUnprocessableEntity, "NO_DEPARTMENT_COVERAGE",
			"course is not attached to any department")
	case errors.Is(err, review.ErrInvalidTransition), errors.Is(err, review.ErrTerminalState):
		return writeError(c, fiber.StatusConflict, "INVALID_TRANSITION", "status change not allowed from the current state")
	case errors.Is(err, service.ErrPromotionFailed):
		c.Locals(middleware.ErrorLocalKey, err.Error())
		return writeError(c, fiber.StatusServiceUnavailable, "PROMOTION_FAILED",
			"document could not be published and is still pending, retry later")
	case errors.Is(err, service.ErrIssuerUnavailable):
		c.Locals(middleware.ErrorLocalKey, err.Error())
		return writeError(c, fiber.StatusServiceUnavailable, "ISSUER_UNAVAILABLE", "download link unavailable, retry later")
	}

	c.Locals(middleware.ErrorLocalKey, err.Error())
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHENTICATED", "authentication required")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "reviewer role required")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, string(validation.CodeTooLarge), "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
