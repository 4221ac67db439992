package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	webmodels "github.com/greenmind-app/greenmind/backend/models"
	"github.com/greenmind-app/greenmind/backend/utils"
	gmconfig "github.com/greenmind-app/greenmind/greenmind/config"
	dbmodels "github.com/greenmind-app/greenmind/greenmind/database/models"
)

// getDashboardStats fans the counter queries out concurrently; the
// first failure cancels the rest.
func getDashboardStats(ctx context.Context, webApp *WebApp) (*webmodels.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, gmconfig.StatsQueryTimeout)
	defer cancel()

	stats := &webmodels.DashboardStats{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := webApp.Repos.CheckIn.Count(ctx)
		stats.TotalCheckIns = count
		return err
	})
	g.Go(func() error {
		count, err := webApp.Repos.Template.Count(ctx)
		stats.TotalTemplates = count
		return err
	})
	g.Go(func() error {
		count, err := webApp.Repos.UserTask.CountByStatus(ctx, dbmodels.TaskStatusPending)
		stats.TasksPending = count
		return err
	})
	g.Go(func() error {
		count, err := webApp.Repos.UserTask.CountByStatus(ctx, dbmodels.TaskStatusCompleted)
		stats.TasksCompleted = count
		return err
	})
	g.Go(func() error {
		count, err := webApp.Repos.UserTask.CountByStatus(ctx, dbmodels.TaskStatusSkipped)
		stats.TasksSkipped = count
		return err
	})
	g.Go(func() error {
		midnight := time.Now().UTC().Truncate(24 * time.Hour)
		count, err := webApp.Repos.Event.CountSince(ctx, midnight)
		stats.EventsToday = count
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func DashboardStatsAPI(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		stats, err := getDashboardStats(ctx, webApp)
		if err != nil {
			slog.Error("Failed to get dashboard stats", slog.String("error", err.Error()))
			return utils.SendError(c, 500, "STATS_FAILED", "Failed to retrieve dashboard statistics", nil)
		}

		return utils.SendSuccess(c, stats, "Dashboard statistics retrieved successfully")
	}
}
