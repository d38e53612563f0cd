package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"public-pulse/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

var kindStatus = []struct {
	kind error
	code int
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized},
	{domain.ErrForbidden, fiber.StatusForbidden},
	{domain.ErrNotFound, fiber.StatusNotFound},
	{domain.ErrConflict, fiber.StatusConflict},
	{domain.ErrRateLimited, fiber.StatusTooManyRequests},
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return "INTERNAL_ERROR"
	}
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	var domainErr *domain.Error

	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.As(err, &domainErr):
		message = domainErr.Message
		for _, ks := range kindStatus {
			if errors.Is(domainErr.Kind, ks.kind) {
				code = ks.code
				break
			}
		}
	default:
		for _, ks := range kindStatus {
			if errors.Is(err, ks.kind) {
				code = ks.code
				message = err.Error()
				break
			}
		}
	}

	traceID := uuid.New().String()[:8]
	if code >= fiber.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", traceID, c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode(code),
		Message: message,
		TraceID: traceID,
	})
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
