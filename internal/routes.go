package internal

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/karloscodes/cartridge"
	cartridgemiddleware "github.com/karloscodes/cartridge/middleware"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/http"
	"portfolio/internal/http/middleware"
	"portfolio/internal/metrics"
	"portfolio/internal/pkg/geoip"
	"portfolio/internal/sections"
	"portfolio/internal/users"
)

// RouteDeps are the collaborators route handlers need beyond the request Context.
type RouteDeps struct {
	Config   *config.Config
	Tokens   *auth.Tokens
	Content  *http.Content
	Locator  *geoip.Locator
	Sections *sections.Loader
}

// SetupSession configures the signed session cookie on the server.
func SetupSession(srv *cartridge.Server, cfg *config.Config) {
	sessionMgr := cartridge.NewSessionManager(cartridge.SessionConfig{
		CookieName: cfg.GetAppName() + "_session",
		Secret:     cfg.GetSessionSecret(),
		TTL:        time.Duration(cfg.GetLoginSessionTimeout()) * time.Second,
		Secure:     cfg.IsProduction(),
		LoginPath:  "/",
	})
	srv.SetSession(sessionMgr)
}

// MountAppRoutes mounts all application routes using cartridge's route API
func MountAppRoutes(srv *cartridge.Server, deps RouteDeps) {
	SetupSession(srv, deps.Config)

	cfg := deps.Config
	content := deps.Content
	guard := auth.NewGuard(srv.Session(), deps.Tokens, srv.GetDBManager(), srv.GetLogger())

	srv.App().Use(metrics.Middleware())

	// Rate limiting only applies in production; it would interfere with tests.
	conditionalRateLimiter := func(limiter fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if cfg.IsProduction() {
				return limiter(c)
			}
			return c.Next()
		}
	}

	// 70 requests per minute per IP for public reads and the contact form
	publicRateLimiter := conditionalRateLimiter(cartridgemiddleware.RateLimiter(
		cartridgemiddleware.WithMax(70),
		cartridgemiddleware.WithDuration(time.Minute),
	))

	// 10 requests per minute against credential guessing
	authRateLimiter := conditionalRateLimiter(cartridgemiddleware.RateLimiter(
		cartridgemiddleware.WithMax(10),
		cartridgemiddleware.WithDuration(time.Minute),
	))

	// ============================================
	// ROUTE CONFIGURATIONS
	// Every API route shares one CORS policy so a preflight answers the same
	// way whichever method it asks about.
	// ============================================

	apiCORSConfig := &cors.Config{
		AllowOrigins: cfg.GetCORSOrigins(),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}

	publicConfig := &cartridge.RouteConfig{
		EnableCORS:       true,
		CORSConfig:       apiCORSConfig,
		CustomMiddleware: []fiber.Handler{publicRateLimiter},
	}

	contactFormConfig := &cartridge.RouteConfig{
		EnableCORS: true,
		CORSConfig: apiCORSConfig,
		CustomMiddleware: []fiber.Handler{
			publicRateLimiter,
			middleware.RejectBots(srv.GetLogger()),
		},
	}

	authConfig := &cartridge.RouteConfig{
		EnableCORS:       true,
		CORSConfig:       apiCORSConfig,
		CustomMiddleware: []fiber.Handler{authRateLimiter},
	}

	sessionConfig := &cartridge.RouteConfig{
		EnableCORS:       true,
		CORSConfig:       apiCORSConfig,
		CustomMiddleware: []fiber.Handler{guard.RequireSession()},
	}

	adminConfig := &cartridge.RouteConfig{
		EnableCORS:       true,
		CORSConfig:       apiCORSConfig,
		CustomMiddleware: []fiber.Handler{guard.RequireRole(users.RoleAdmin)},
	}

	// The cors middleware answers preflights itself; the handler only runs
	// for OPTIONS requests that are not preflights.
	corsOnlyConfig := &cartridge.RouteConfig{EnableCORS: true, CORSConfig: apiCORSConfig}
	for _, path := range []string{
		"/api/auth/login", "/api/auth/token", "/api/auth/logout", "/api/auth/session",
		"/api/projects", "/api/projects/:id",
		"/api/skills", "/api/skills/:id",
		"/api/experiences", "/api/experiences/:id",
		"/api/education", "/api/education/:id",
		"/api/profile", "/api/home-stats",
		"/api/contact", "/api/contact/:id",
		"/api/admin/stats",
	} {
		srv.Options(path, http.PreflightAction, corsOnlyConfig)
	}

	// === ROOT ROUTES ===
	srv.Get("/", http.HomeIndexAction(deps.Sections, content), &cartridge.RouteConfig{
		CustomMiddleware: []fiber.Handler{publicRateLimiter},
	})

	srv.Get("/_health", http.HealthIndexAction)
	srv.Head("/_health", http.HealthIndexAction)

	srv.App().Get("/metrics", metrics.Handler())

	// === AUTHENTICATION ROUTES ===
	srv.Post("/api/auth/login", http.LoginAction, authConfig)
	srv.Post("/api/auth/token", http.TokenCreateAction(deps.Tokens), authConfig)
	srv.Post("/api/auth/logout", http.LogoutAction, corsOnlyConfig)
	srv.Get("/api/auth/session", http.SessionShowAction, sessionConfig)

	// === CONTENT ROUTES ===
	srv.Get("/api/projects", http.ProjectsIndexAction(content), publicConfig)
	srv.Post("/api/projects", http.ProjectsCreateAction(content), adminConfig)
	srv.Get("/api/projects/:id", http.ProjectsShowAction(content), publicConfig)
	srv.Put("/api/projects/:id", http.ProjectsUpdateAction(content), adminConfig)
	srv.Delete("/api/projects/:id", http.ProjectsDeleteAction(content), adminConfig)

	srv.Get("/api/skills", http.SkillsIndexAction(content), publicConfig)
	srv.Post("/api/skills", http.SkillsCreateAction(content), adminConfig)
	srv.Get("/api/skills/:id", http.SkillsShowAction(content), publicConfig)
	srv.Put("/api/skills/:id", http.SkillsUpdateAction(content), adminConfig)
	srv.Delete("/api/skills/:id", http.SkillsDeleteAction(content), adminConfig)

	srv.Get("/api/experiences", http.ExperiencesIndexAction(content), publicConfig)
	srv.Post("/api/experiences", http.ExperiencesCreateAction(content), adminConfig)
	srv.Get("/api/experiences/:id", http.ExperiencesShowAction(content), publicConfig)
	srv.Put("/api/experiences/:id", http.ExperiencesUpdateAction(content), adminConfig)
	srv.Delete("/api/experiences/:id", http.ExperiencesDeleteAction(content), adminConfig)

	srv.Get("/api/education", http.EducationIndexAction(content), publicConfig)
	srv.Post("/api/education", http.EducationCreateAction(content), adminConfig)
	srv.Get("/api/education/:id", http.EducationShowAction(content), publicConfig)
	srv.Put("/api/education/:id", http.EducationUpdateAction(content), adminConfig)
	srv.Delete("/api/education/:id", http.EducationDeleteAction(content), adminConfig)

	srv.Get("/api/profile", http.ProfileShowAction(content), publicConfig)
	srv.Post("/api/profile", http.ProfileUpsertAction(content), adminConfig)
	srv.Put("/api/profile", http.ProfileUpsertAction(content), adminConfig)

	srv.Get("/api/home-stats", http.HomeStatsShowAction(content), publicConfig)
	srv.Put("/api/home-stats", http.HomeStatsUpdateAction(content), adminConfig)

	// === CONTACT ROUTES ===
	// Marking a message read only needs a session; deleting one needs admin.
	srv.Get("/api/contact", http.ContactsIndexAction, sessionConfig)
	srv.Post("/api/contact", http.ContactsCreateAction(deps.Locator), contactFormConfig)
	srv.Get("/api/contact/:id", http.ContactsShowAction, sessionConfig)
	srv.Put("/api/contact/:id", http.ContactsUpdateAction, sessionConfig)
	srv.Delete("/api/contact/:id", http.ContactsDeleteAction, adminConfig)

	// === ADMIN ROUTES ===
	srv.Get("/api/admin/stats", http.AdminStatsAction, sessionConfig)
}
