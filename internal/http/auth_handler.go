package http

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"portfolio/internal/auth"
	"portfolio/internal/users"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authenticate checks the request credentials. It returns a nil user after
// writing the error response.
func authenticate(ctx *cartridge.Context) (*users.User, error) {
	var in credentials
	if ok, err := parseBody(ctx, &in); !ok {
		return nil, err
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	user, err := users.Authenticate(ctx.DB(), in.Email, in.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		ctx.Logger.Info("Failed login attempt", slog.String("email", in.Email))
		return nil, ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if err != nil {
		return nil, respondError(ctx, err, "User", "authenticate")
	}
	return user, nil
}

// LoginAction starts an admin session for valid credentials.
func LoginAction(ctx *cartridge.Context) error {
	user, err := authenticate(ctx)
	if user == nil {
		return err
	}

	if err := ctx.Session.SetSession(ctx.Ctx, user.ID); err != nil {
		return respondError(ctx, err, "User", "start session")
	}

	ctx.Logger.Info("User logged in", slog.Uint64("user_id", uint64(user.ID)))
	return ctx.JSON(fiber.Map{"user": user})
}

// LogoutAction expires the session cookie. It succeeds without a session.
func LogoutAction(ctx *cartridge.Context) error {
	ctx.Session.ClearSession(ctx.Ctx)
	return ctx.JSON(fiber.Map{"message": "Logged out successfully"})
}

// SessionShowAction returns the authenticated user.
func SessionShowAction(ctx *cartridge.Context) error {
	return ctx.JSON(fiber.Map{"user": auth.CurrentUser(ctx.Ctx)})
}

// TokenCreateAction issues bearer tokens for non-browser clients.
func TokenCreateAction(tokens *auth.Tokens) cartridge.HandlerFunc {
	return func(ctx *cartridge.Context) error {
		user, err := authenticate(ctx)
		if user == nil {
			return err
		}

		token, expiresAt, err := tokens.Issue(user)
		if err != nil {
			return respondError(ctx, err, "User", "issue token")
		}

		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token":     token,
			"expiresAt": expiresAt,
			"user":      user,
		})
	}
}
