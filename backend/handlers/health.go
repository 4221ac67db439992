package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/greenmind-app/greenmind/backend/models"
	"github.com/greenmind-app/greenmind/backend/utils"
)

func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := webmodels.NewHealthCheck(webApp.Version)

		if webApp.DB != nil {
			start := time.Now()
			if err := webApp.DB.Ping(c.Context()); err != nil {
				health.AddComponent("database", "unhealthy", err.Error(), nil)
			} else {
				health.AddComponent("database", "healthy", "", map[string]interface{}{
					"ping_ms": time.Since(start).Milliseconds(),
				})
			}
		}

		status := 200
		if health.Status != "healthy" {
			status = 503
		}
		return utils.SendJSON(c, status, health)
	}
}
