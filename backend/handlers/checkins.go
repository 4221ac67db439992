package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/greenmind-app/greenmind/backend/models"
	"github.com/greenmind-app/greenmind/backend/utils"
	gmconfig "github.com/greenmind-app/greenmind/greenmind/config"
	"github.com/greenmind-app/greenmind/greenmind/tasks"
)

func CheckInsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		session, err := sessionUser(c)
		if err != nil {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		var req webmodels.CheckInCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if errs := utils.ValidateCheckInCreateRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		result, err := webApp.TaskService.CreateCheckIn(ctx, tasks.CheckInInput{
			UserID:      session.UserID,
			MoodLevel:   req.MoodLevel,
			EnergyLevel: req.EnergyLevel,
			Notes:       req.Notes,
		})
		if err != nil {
			if errors.Is(err, tasks.ErrInvalidLevel) {
				return utils.SendBadRequest(c, "Invalid mood or energy level", nil)
			}
			slog.Error("Failed to create check-in",
				slog.String("user_id", session.UserID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create check-in")
		}

		resp := &webmodels.CheckInResponse{
			CheckIn:      result.CheckIn,
			TaskAssigned: result.Assigned,
		}
		if result.Task != nil {
			resp.Task = taskResponse(result.Task)
		}

		message := "Check-in zapisany"
		if result.Assigned {
			message = "Check-in zapisany, zadanie przydzielone"
		}
		return utils.SendCreated(c, resp, message)
	}
}

func CheckInsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		session, err := sessionUser(c)
		if err != nil {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(gmconfig.DefaultPageSize)))

		checkIns, err := webApp.Repos.CheckIn.List(ctx, session.UserID, page, limit)
		if err != nil {
			slog.Error("Failed to list check-ins", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list check-ins")
		}

		return utils.SendSuccess(c, checkIns, "Check-ins retrieved successfully")
	}
}

func CheckInsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		session, err := sessionUser(c)
		if err != nil {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid check-in ID", nil)
		}

		checkIn, err := webApp.Repos.CheckIn.GetOwned(ctx, id, session.UserID)
		if err != nil {
			slog.Error("Failed to get check-in", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to get check-in")
		}
		if checkIn == nil {
			return utils.SendNotFound(c, "Check-in not found")
		}

		return utils.SendSuccess(c, checkIn, "Check-in retrieved successfully")
	}
}
