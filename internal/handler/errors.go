package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Vibhav-y/GitTool/internal/auth"
	"github.com/Vibhav-y/GitTool/internal/repository"
	"github.com/Vibhav-y/GitTool/internal/service"
)

// ErrorHandler renders errors that escape a handler, including Fiber's own.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
		})
	}
	return respondError(c, err)
}

// respondError maps service errors to HTTP status codes. Upstream failures
// fall through to 500 with their message.
func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, service.ErrUnknownPackage),
		errors.Is(err, service.ErrInvalidSignature),
		errors.Is(err, service.ErrAlreadyProcessed),
		errors.Is(err, repository.ErrEmailTaken):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrInsufficientTokens):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, repository.ErrProjectNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request body",
	})
}
