package http

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
)

const healthPingTimeout = 2 * time.Second

// HealthStatus is the /_health payload.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	DBStatus  string    `json:"db_status"`
}

// HealthIndexAction reports whether the database answers. A failed ping
// answers 503 so load balancers take the instance out of rotation.
func HealthIndexAction(ctx *cartridge.Context) error {
	health := HealthStatus{Status: "ok", DBStatus: "ok", Timestamp: time.Now().UTC()}

	if err := pingDatabase(ctx); err != nil {
		ctx.Logger.Error("Health check failed", slog.Any("error", err))
		health.Status = "degraded"
		health.DBStatus = "error"
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(health)
	}
	return ctx.JSON(health)
}

func pingDatabase(ctx *cartridge.Context) error {
	db := ctx.DBManager.GetConnection()
	if db == nil {
		return errors.New("database connection unavailable")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx.UserContext(), healthPingTimeout)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}
