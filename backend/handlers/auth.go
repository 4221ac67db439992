package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/greenmind-app/greenmind/backend/models"
	webservices "github.com/greenmind-app/greenmind/backend/services"
	"github.com/greenmind-app/greenmind/backend/utils"
	gmconfig "github.com/greenmind-app/greenmind/greenmind/config"
	"github.com/greenmind-app/greenmind/greenmind/database/repositories"
)

func Register(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		var req webmodels.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if errs := utils.ValidateRegisterRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		user, err := webApp.AuthService.Register(ctx, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, repositories.ErrEmailTaken) {
				return utils.SendError(c, fiber.StatusBadRequest, "CONFLICT", "Użytkownik o podanym adresie e-mail już istnieje", nil)
			}
			slog.Error("Failed to register user", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to register user")
		}

		session := newUserSession(user.ID, user.Email)
		if err := webApp.SessionService.CreateSession(c, session); err != nil {
			slog.Error("Failed to create session", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create session")
		}

		return utils.SendCreated(c, fiber.Map{
			"user_id": user.ID,
			"email":   user.Email,
		}, "Konto zostało utworzone")
	}
}

func Login(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		var req webmodels.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if errs := utils.ValidateLoginRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		user, err := webApp.AuthService.Authenticate(ctx, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, webservices.ErrInvalidCredentials) {
				return utils.SendUnauthorized(c, "Nieprawidłowy e-mail lub hasło")
			}
			slog.Error("Failed to authenticate user", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to authenticate")
		}

		session := newUserSession(user.ID, user.Email)
		if err := webApp.SessionService.CreateSession(c, session); err != nil {
			slog.Error("Failed to create session", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create session")
		}

		return utils.SendSuccess(c, fiber.Map{
			"user_id": user.ID,
			"email":   user.Email,
		}, "Zalogowano pomyślnie")
	}
}

func Logout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		webApp.SessionService.DestroySession(c)
		return utils.SendSuccess(c, nil, "Wylogowano pomyślnie")
	}
}

// ValidateSession lets the frontend check session state without a
// round trip through a protected endpoint.
func ValidateSession(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := webApp.GetSession(c)
		if err != nil || session == nil {
			return utils.SendUnauthorized(c, "No valid session")
		}
		return utils.SendSuccess(c, session, "Session valid")
	}
}

func newUserSession(userID, email string) *webmodels.UserSession {
	now := time.Now()
	return &webmodels.UserSession{
		UserID:    userID,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(gmconfig.SessionTimeout),
	}
}
