package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/greenmind-app/greenmind/backend/models"
	"github.com/greenmind-app/greenmind/backend/utils"
	gmconfig "github.com/greenmind-app/greenmind/greenmind/config"
	dbmodels "github.com/greenmind-app/greenmind/greenmind/database/models"
)

func EventsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		session, err := sessionUser(c)
		if err != nil {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		var req webmodels.EventCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if errs := utils.ValidateEventCreateRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		event := &dbmodels.UserEvent{
			UserID:    session.UserID,
			EventType: req.EventType,
			EntityID:  req.EntityID,
			Payload:   req.Payload,
		}
		if err := webApp.Repos.Event.Insert(ctx, event); err != nil {
			slog.Error("Failed to insert event", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to record event")
		}

		return utils.SendCreated(c, event, "Event recorded successfully")
	}
}

func EventsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		session, err := sessionUser(c)
		if err != nil {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(gmconfig.DefaultPageSize)))

		events, err := webApp.Repos.Event.ListByUser(ctx, session.UserID, limit)
		if err != nil {
			slog.Error("Failed to list events", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list events")
		}

		return utils.SendSuccess(c, events, "Events retrieved successfully")
	}
}
