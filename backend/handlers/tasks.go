package handlers

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/greenmind-app/greenmind/backend/models"
	"github.com/greenmind-app/greenmind/backend/utils"
	gmconfig "github.com/greenmind-app/greenmind/greenmind/config"
	dbmodels "github.com/greenmind-app/greenmind/greenmind/database/models"
	"github.com/greenmind-app/greenmind/greenmind/database/repositories"
	"github.com/greenmind-app/greenmind/greenmind/tasks"
)

func TasksList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		session, err := sessionUser(c)
		if err != nil {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(gmconfig.DefaultPageSize)))

		filter := repositories.UserTaskFilter{
			Status: c.Query("status"),
			Page:   page,
			Limit:  limit,
		}
		if dateStr := c.Query("date"); dateStr != "" {
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return utils.SendBadRequest(c, "Invalid date format, expected YYYY-MM-DD", nil)
			}
			filter.Date = date
		}

		taskList, err := webApp.TaskService.List(ctx, session.UserID, filter)
		if err != nil {
			slog.Error("Failed to list tasks", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list tasks")
		}

		responses := make([]*webmodels.TaskResponse, len(taskList))
		for i, task := range taskList {
			responses[i] = taskResponse(task)
		}

		return utils.SendSuccess(c, responses, "Tasks retrieved successfully")
	}
}

func TasksToday(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		session, err := sessionUser(c)
		if err != nil {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		view, err := webApp.TaskService.Today(ctx, session.UserID)
		if err != nil {
			if errors.Is(err, tasks.ErrNotFound) {
				return utils.SendNotFound(c, "Brak zadania na dziś")
			}
			slog.Error("Failed to get today's task", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to get today's task")
		}

		return utils.SendSuccess(c, viewResponse(view), "Task retrieved successfully")
	}
}

func TasksDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		session, err := sessionUser(c)
		if err != nil {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid task ID", nil)
		}

		view, err := webApp.TaskService.Get(ctx, id, session.UserID)
		if err != nil {
			if errors.Is(err, tasks.ErrNotFound) {
				return utils.SendNotFound(c, "Task not found")
			}
			slog.Error("Failed to get task", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to get task")
		}

		return utils.SendSuccess(c, viewResponse(view), "Task retrieved successfully")
	}
}

// TasksCreate creates a task directly from a chosen template. The body
// carries user_id so a mismatch with the session is rejected outright
// rather than silently reassigned.
func TasksCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		session, err := sessionUser(c)
		if err != nil {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		var req webmodels.TaskCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if req.TemplateID == 0 {
			return utils.SendBadRequest(c, "template_id is required", nil)
		}
		if req.UserID != "" && req.UserID != session.UserID {
			return utils.SendError(c, fiber.StatusForbidden, "FORBIDDEN", "Cannot create tasks for another user", nil)
		}

		task, err := webApp.TaskService.Assign(ctx, session.UserID, req.TemplateID, req.CheckInID)
		if err != nil {
			if errors.Is(err, tasks.ErrNotFound) {
				return utils.SendNotFound(c, "Template or check-in not found")
			}
			if errors.Is(err, repositories.ErrTaskExists) {
				return utils.SendBadRequest(c, "Task already exists for this date", nil)
			}
			slog.Error("Failed to create task",
				slog.String("user_id", session.UserID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create task")
		}

		return utils.SendCreated(c, taskResponse(task), "Zadanie utworzone")
	}
}

// TasksPatch applies one task mutation: a terminal status change, or a
// replacement request via a bumped new_task_requests counter.
func TasksPatch(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		session, err := sessionUser(c)
		if err != nil {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid task ID", nil)
		}

		var req webmodels.TaskPatchRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if errs := utils.ValidateTaskPatchRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		// A zero counter requests nothing, so the task comes back as-is.
		if req.NewTaskRequests != nil && *req.NewTaskRequests == 0 {
			view, err := webApp.TaskService.Get(ctx, id, session.UserID)
			if err != nil {
				return sendTaskError(c, err, session.UserID, id)
			}
			return utils.SendSuccess(c, taskResponse(view.Task), "Zadanie zaktualizowane")
		}

		var task *dbmodels.UserTask
		switch {
		case req.Status != nil && *req.Status == dbmodels.TaskStatusCompleted:
			task, err = webApp.TaskService.Complete(ctx, id, session.UserID)
		case req.Status != nil && *req.Status == dbmodels.TaskStatusSkipped:
			task, err = webApp.TaskService.Skip(ctx, id, session.UserID)
		default:
			task, err = webApp.TaskService.RequestNew(ctx, id, session.UserID)
		}
		if err != nil {
			return sendTaskError(c, err, session.UserID, id)
		}

		message := "Zadanie zaktualizowane"
		if req.Status == nil {
			message = "Przydzielono nowe zadanie"
		}
		return utils.SendSuccess(c, taskResponse(task), message)
	}
}

func sendTaskError(c *fiber.Ctx, err error, userID string, taskID int64) error {
	switch {
	case errors.Is(err, tasks.ErrNotFound):
		return utils.SendNotFound(c, "Task not found")
	case errors.Is(err, tasks.ErrInvalidTransition):
		return utils.SendBadRequest(c, utils.MsgTaskAlreadyClosed, nil)
	case errors.Is(err, tasks.ErrLimitExceeded):
		return utils.SendBadRequest(c, utils.MsgRequestLimit, nil)
	case errors.Is(err, tasks.ErrNoTemplates):
		slog.Error("No task templates available for reassignment")
		return utils.SendInternalServerError(c, "No tasks available")
	default:
		slog.Error("Failed to update task",
			slog.String("user_id", userID),
			slog.Int64("task_id", taskID),
			slog.String("error", err.Error()))
		return utils.SendInternalServerError(c, "Failed to update task")
	}
}
