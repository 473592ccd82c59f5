package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"portfolio/internal/metrics"
	"portfolio/internal/pkg/useragent"
)

// RejectBots answers 403 to requests whose User-Agent matches a known bot or
// automated client.
func RejectBots(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if bot, ok := useragent.DetectBot(c.Get(fiber.HeaderUserAgent)); ok {
			logger.Info("Rejected automated contact submission",
				slog.String("bot", bot.Name),
				slog.String("path", c.Path()))
			metrics.ContactMessage(metrics.ContactBot)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}
		return c.Next()
	}
}
