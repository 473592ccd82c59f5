// Package internal contains core application functionality
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/http"
	"portfolio/internal/jobs"
	"portfolio/internal/pkg/geoip"
	"portfolio/internal/sections"
	"portfolio/web"
)

// Application wraps cartridge.Application with the portfolio's database,
// background workers and GeoIP reader.
type Application struct {
	*cartridge.Application
	Config      *config.Config
	DBManager   *database.DBManager // Portfolio DB manager with migration methods
	Scheduler   *jobs.Scheduler
	Revalidator *jobs.Revalidator
	Locator     *geoip.Locator
}

// ServerDeps are the collaborators needed to build the HTTP server.
type ServerDeps struct {
	Config    *config.Config
	Logger    *slog.Logger
	DBManager cartridge.DBManager
	Notifier  http.Notifier
	Locator   *geoip.Locator
}

// NewServerConfig returns the cartridge server settings: embedded views and
// assets, JSON errors, and no Sec-Fetch-Site check since the API serves
// non-browser clients.
func NewServerConfig(deps ServerDeps) *cartridge.ServerConfig {
	cfg := deps.Config

	serverCfg := cartridge.DefaultServerConfig()
	serverCfg.Config = cfg
	serverCfg.Logger = deps.Logger
	serverCfg.DBManager = deps.DBManager
	serverCfg.ErrorHandler = errorHandler(deps.Logger)
	serverCfg.ViewsEngine = http.NewViews(cfg.IsDevelopment())
	serverCfg.StaticFS = web.Static()
	serverCfg.StaticPrefix = cfg.GetAssetsPrefix()
	serverCfg.EnableSecFetchSite = false
	return serverCfg
}

// NewRouteDeps builds the handler collaborators for deps.
func NewRouteDeps(deps ServerDeps) RouteDeps {
	cfg := deps.Config
	ttl := time.Duration(cfg.GetLoginSessionTimeout()) * time.Second

	return RouteDeps{
		Config:   cfg,
		Tokens:   auth.NewTokens(cfg.GetSessionSecret(), ttl),
		Content:  http.NewContent(cache.New(time.Duration(cfg.CacheTTLSeconds)*time.Second), deps.Notifier),
		Locator:  deps.Locator,
		Sections: sections.NewLoader(deps.Logger),
	}
}

// NewServer builds a cartridge server with every application route mounted.
func NewServer(deps ServerDeps) (*cartridge.Server, error) {
	srv, err := cartridge.NewServer(NewServerConfig(deps))
	if err != nil {
		return nil, err
	}
	MountAppRoutes(srv, NewRouteDeps(deps))
	return srv, nil
}

// NewApp creates a new application instance with default settings
func NewApp() (*Application, error) {
	cfg := config.GetConfig()
	return NewAppWithConfig(cfg)
}

// NewAppWithConfig creates a new application with the provided config
func NewAppWithConfig(cfg *config.Config) (*Application, error) {
	logger := cartridge.NewLogger(cfg, nil)

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	locator := geoip.Open(cfg.GeoDBPath, logger)
	revalidator := jobs.NewRevalidator(cfg.RevalidationURL, cfg.RevalidationSecret, logger)

	scheduler := jobs.NewScheduler(logger,
		jobs.NewContactRetentionJob(dbManager, logger, cfg.ContactRetentionDays),
		jobs.NewGeoLiteReloadJob(cfg.GeoDBPath, locator, logger),
	)

	deps := ServerDeps{
		Config:    cfg,
		Logger:    logger,
		DBManager: dbManager,
		Notifier:  revalidator,
		Locator:   locator,
	}

	app, err := cartridge.NewApplication(cartridge.ApplicationOptions{
		Config:       cfg,
		Logger:       logger,
		DBManager:    dbManager,
		ServerConfig: NewServerConfig(deps),
		RouteMountFunc: func(srv *cartridge.Server) {
			MountAppRoutes(srv, NewRouteDeps(deps))
		},
		BackgroundWorkers: []cartridge.BackgroundWorker{scheduler, revalidator},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return &Application{
		Application: app,
		Config:      cfg,
		DBManager:   dbManager,
		Scheduler:   scheduler,
		Revalidator: revalidator,
		Locator:     locator,
	}, nil
}

// Shutdown stops the workers and HTTP server, then releases the GeoIP reader
// and the database.
func (a *Application) Shutdown(ctx context.Context) error {
	var errs []error

	if err := a.Application.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}
	if err := a.Locator.Close(); err != nil {
		errs = append(errs, fmt.Errorf("geoip close: %w", err))
	}
	if err := a.DBManager.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}

	a.Logger.Info("Application stopped")
	return errors.Join(errs...)
}

// errorHandler renders unhandled errors as {"error": message}.
func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			logger.Error("Unhandled request error",
				slog.String("path", c.Path()),
				slog.Any("error", err))
		}

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}
