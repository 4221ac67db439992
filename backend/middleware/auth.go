package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/greenmind-app/greenmind/backend/handlers"
	"github.com/greenmind-app/greenmind/backend/utils"
)

// AuthRequired middleware ensures the user is authenticated
func AuthRequired(webApp *handlers.WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := webApp.GetSession(c)
		if err != nil {
			slog.Debug("Auth required: no valid session", slog.String("error", err.Error()))
			return utils.SendUnauthorized(c, "Authentication required")
		}

		if session == nil || session.UserID == "" {
			slog.Debug("Auth required: invalid session")
			return utils.SendUnauthorized(c, "Authentication required")
		}

		// Store user in context
		c.Locals("user", session)

		return c.Next()
	}
}

// OptionalAuth middleware adds user info to context if authenticated, but doesn't require it
func OptionalAuth(webApp *handlers.WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := webApp.GetSession(c)
		if err == nil && session != nil && session.UserID != "" {
			c.Locals("user", session)
		}

		return c.Next()
	}
}
