package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/greenmind-app/greenmind/backend/models"
	"github.com/greenmind-app/greenmind/backend/utils"
	gmconfig "github.com/greenmind-app/greenmind/greenmind/config"
	"github.com/greenmind-app/greenmind/greenmind/database/repositories"
)

func TemplatesList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		filter := repositories.TemplateFilter{
			Search: c.Query("search"),
		}
		if moodStr := c.Query("mood_level"); moodStr != "" {
			mood, err := strconv.Atoi(moodStr)
			if err != nil || mood < gmconfig.MoodLevelMin || mood > gmconfig.MoodLevelMax {
				return utils.SendBadRequest(c, "Invalid mood_level", nil)
			}
			filter.MoodLevel = &mood
		}
		if energyStr := c.Query("energy_level"); energyStr != "" {
			energy, err := strconv.Atoi(energyStr)
			if err != nil || energy < gmconfig.EnergyLevelMin || energy > gmconfig.EnergyLevelMax {
				return utils.SendBadRequest(c, "Invalid energy_level", nil)
			}
			filter.EnergyLevel = &energy
		}

		templates, err := webApp.Repos.Template.List(ctx, filter)
		if err != nil {
			slog.Error("Failed to list templates", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list templates")
		}

		responses := make([]*webmodels.TemplateResponse, len(templates))
		for i, t := range templates {
			responses[i] = webmodels.NewTemplateResponse(t)
		}

		return utils.SendSuccess(c, responses, "Templates retrieved successfully")
	}
}

func TemplatesDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid template ID", nil)
		}

		template, err := webApp.Repos.Template.GetByID(ctx, id)
		if err != nil {
			slog.Error("Failed to get template", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to get template")
		}
		if template == nil {
			return utils.SendNotFound(c, "Template not found")
		}

		return utils.SendSuccess(c, webmodels.NewTemplateResponse(template), "Template retrieved successfully")
	}
}
