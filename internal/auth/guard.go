// Package auth resolves the current user from a session cookie or a bearer
// token and guards routes by authentication and role.
package auth

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
	"gorm.io/gorm"

	"portfolio/internal/users"
)

const currentUserKey = "current_user"

// DBProvider supplies the database connection used to load the principal.
type DBProvider interface {
	GetConnection() *gorm.DB
}

// Guard is the single authorization point for protected routes.
type Guard struct {
	sessions *cartridge.SessionManager
	tokens   *Tokens
	db       DBProvider
	logger   *slog.Logger
}

// NewGuard creates a guard resolving principals through sessions and tokens.
func NewGuard(sessions *cartridge.SessionManager, tokens *Tokens, db DBProvider, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{sessions: sessions, tokens: tokens, db: db, logger: logger}
}

// RequireSession rejects requests without an authenticated user with 401.
func (g *Guard) RequireSession() fiber.Handler {
	return g.require("")
}

// RequireRole rejects anonymous requests with 401 and users lacking role with 403.
func (g *Guard) RequireRole(role users.Role) fiber.Handler {
	return g.require(role)
}

func (g *Guard) require(role users.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := g.Resolve(c)
		if err != nil {
			g.logger.Error("Failed to resolve current user", slog.Any("error", err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		if role != "" && !user.HasRole(role) {
			g.logger.Debug("Forbidden request",
				slog.Uint64("user_id", uint64(user.ID)),
				slog.String("role", string(user.Role)),
				slog.String("required", string(role)))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// Resolve returns the user behind the request's session cookie or bearer token.
// It returns nil without error for anonymous requests.
func (g *Guard) Resolve(c *fiber.Ctx) (*users.User, error) {
	if user := CurrentUser(c); user != nil {
		return user, nil
	}

	userID, ok := g.sessions.GetUserID(c)
	if !ok {
		userID, ok = g.bearerSubject(c)
	}
	if !ok {
		return nil, nil
	}

	user, err := users.FindByID(g.db.GetConnection(), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (g *Guard) bearerSubject(c *fiber.Ctx) (uint, bool) {
	if g.tokens == nil {
		return 0, false
	}
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, false
	}
	claims, err := g.tokens.Parse(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
	if err != nil {
		g.logger.Debug("Rejected bearer token", slog.Any("error", err))
		return 0, false
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		g.logger.Debug("Rejected bearer token subject", slog.String("subject", claims.Subject))
		return 0, false
	}
	return uint(id), true
}

// CurrentUser returns the user stored by the guard for this request, if any.
func CurrentUser(c *fiber.Ctx) *users.User {
	user, _ := c.Locals(currentUserKey).(*users.User)
	return user
}
