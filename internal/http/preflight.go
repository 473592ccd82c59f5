package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
)

// PreflightAction answers OPTIONS requests that carry no CORS preflight headers.
func PreflightAction(ctx *cartridge.Context) error {
	return ctx.SendStatus(fiber.StatusNoContent)
}
