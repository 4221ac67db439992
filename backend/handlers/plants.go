package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/greenmind-app/greenmind/backend/models"
	"github.com/greenmind-app/greenmind/backend/utils"
	gmconfig "github.com/greenmind-app/greenmind/greenmind/config"
	dbmodels "github.com/greenmind-app/greenmind/greenmind/database/models"
)

// emptyBoard returns a fresh plants board with no plants placed.
func emptyBoard() [][]interface{} {
	board := make([][]interface{}, gmconfig.PlantsBoardRows)
	for i := range board {
		board[i] = make([]interface{}, gmconfig.PlantsBoardCols)
	}
	return board
}

func PlantsGet(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		session, err := sessionUser(c)
		if err != nil {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		progress, err := webApp.Repos.Plants.Get(ctx, session.UserID)
		if err != nil {
			slog.Error("Failed to get plants progress", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to get plants progress")
		}
		if progress == nil {
			// First visit: an empty board, nothing persisted yet
			progress = &dbmodels.PlantsProgress{
				UserID:     session.UserID,
				BoardState: emptyBoard(),
			}
		}

		return utils.SendSuccess(c, progress, "Plants progress retrieved successfully")
	}
}

func PlantsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		session, err := sessionUser(c)
		if err != nil {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		var req webmodels.PlantsUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if errs := utils.ValidatePlantsBoard(req.BoardState); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		progress := &dbmodels.PlantsProgress{
			UserID:     session.UserID,
			BoardState: req.BoardState,
		}
		if err := webApp.Repos.Plants.Upsert(ctx, progress); err != nil {
			slog.Error("Failed to update plants progress", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to update plants progress")
		}

		return utils.SendSuccess(c, progress, "Plants progress updated successfully")
	}
}
