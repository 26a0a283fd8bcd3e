package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
)

// respondError maps domain errors to stable statuses. Unclassified and
// infrastructure errors surface as a generic 500 so internal details never
// leak.
func respondError(c *fiber.Ctx, err error) error {
	if ve, ok := autherror.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
	}

	switch {
	case errors.Is(err, autherror.ErrInvalidCredentials),
		errors.Is(err, autherror.ErrAccountLocked),
		errors.Is(err, autherror.ErrAccountDeactivated),
		errors.Is(err, autherror.ErrEmailNotVerified),
		errors.Is(err, autherror.ErrTokenExpired),
		errors.Is(err, autherror.ErrTokenMalformed),
		errors.Is(err, autherror.ErrWrongPurpose),
		errors.Is(err, autherror.ErrInvalidOrRevoked):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, autherror.ErrEmailAlreadyInUse):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, autherror.ErrTokenNotFound),
		errors.Is(err, autherror.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, autherror.ErrTokenAlreadyUsed),
		errors.Is(err, autherror.ErrEmailAlreadyVerified):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, autherror.ErrEmailDeliveryFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
