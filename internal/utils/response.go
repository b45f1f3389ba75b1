package utils

import (
	stderrors "errors"

	"palenque/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"error": message})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, fiber.Map{"error": message})
}

// Forbidden sends a JSON error response with status 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusForbidden, fiber.Map{"error": message})
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusNotFound, fiber.Map{"error": message})
}

// Conflict sends a JSON error response with status 409.
func Conflict(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusConflict, fiber.Map{"error": message})
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusInternalServerError, fiber.Map{"error": message})
}

// DomainErrorResponse maps a domain error onto an HTTP status and a stable
// error payload. Unknown errors become a generic 500.
func DomainErrorResponse(c *fiber.Ctx, err error) error {
	var domainErr *errors.DomainError
	if !stderrors.As(err, &domainErr) {
		return InternalError(c, "internal error")
	}

	status := fiber.StatusUnprocessableEntity
	switch domainErr.Code {
	case errors.ErrWalletNotFound.Code, errors.ErrOperationNotFound.Code:
		status = fiber.StatusNotFound
	case errors.ErrInvalidAmount.Code, errors.ErrInvalidReason.Code,
		errors.ErrInvalidAdjustmentType.Code, errors.ErrProofRequired.Code:
		status = fiber.StatusBadRequest
	case errors.ErrInvalidStateTransition.Code:
		status = fiber.StatusConflict
	case errors.ErrUnauthorized.Code:
		status = fiber.StatusForbidden
	case errors.ErrOperationTimeout.Code:
		status = fiber.StatusGatewayTimeout
	}

	return Respond(c, status, fiber.Map{
		"error": domainErr.Message,
		"code":  domainErr.Code,
	})
}
