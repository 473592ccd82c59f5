package http

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"portfolio/internal/models"
)

// respondError maps err onto the API error taxonomy. subject names the entity
// in not-found messages and action names the failed operation in 500s.
func respondError(ctx *cartridge.Context, err error, subject, action string) error {
	var validation *models.ValidationError
	switch {
	case errors.As(err, &validation):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Message})
	case models.IsNotFound(err):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": subject + " not found"})
	case errors.Is(err, models.ErrUnauthorized):
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	case errors.Is(err, models.ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	ctx.Logger.Error("Failed to "+action, slog.Any("error", err))
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Failed to " + action,
		"details": err.Error(),
	})
}

// parseBody decodes the JSON request body into v. It reports false after
// writing a 400 response when the body is malformed.
func parseBody(ctx *cartridge.Context, v interface{}) (bool, error) {
	if err := ctx.BodyParser(v); err != nil {
		ctx.Logger.Debug("Invalid request body", slog.Any("error", err))
		return false, ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	return true, nil
}
