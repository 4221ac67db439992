package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/greenmind-app/greenmind/backend/config"
	webmodels "github.com/greenmind-app/greenmind/backend/models"
	webservices "github.com/greenmind-app/greenmind/backend/services"
	gmconfig "github.com/greenmind-app/greenmind/greenmind/config"
	"github.com/greenmind-app/greenmind/greenmind/database"
	dbmodels "github.com/greenmind-app/greenmind/greenmind/database/models"
	"github.com/greenmind-app/greenmind/greenmind/database/repositories"
	"github.com/greenmind-app/greenmind/greenmind/tasks"
)

// TaskService is the check-in and task lifecycle surface the handlers
// depend on.
type TaskService interface {
	CreateCheckIn(ctx context.Context, input tasks.CheckInInput) (*tasks.CheckInResult, error)
	Assign(ctx context.Context, userID string, templateID int64, checkInID *int64) (*dbmodels.UserTask, error)
	Get(ctx context.Context, id int64, userID string) (*tasks.View, error)
	List(ctx context.Context, userID string, filter repositories.UserTaskFilter) ([]*dbmodels.UserTask, error)
	Today(ctx context.Context, userID string) (*tasks.View, error)
	Complete(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error)
	Skip(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error)
	RequestNew(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error)
}

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config         *config.WebAppConfig
	DB             *database.DB
	Repos          *webmodels.Repositories
	TaskService    TaskService
	AuthService    *webservices.AuthService
	SessionService *webservices.SessionService
	Version        string
	Commit         string
}

// parseInt64 is a utility function to parse int64 from string
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// GetSession gets the current user session
func (w *WebApp) GetSession(c *fiber.Ctx) (*webmodels.UserSession, error) {
	if w.SessionService == nil {
		return nil, fmt.Errorf("session service not configured")
	}
	return w.SessionService.GetSession(c)
}

// sessionUser returns the authenticated user or an error response.
func sessionUser(c *fiber.Ctx) (*webmodels.UserSession, error) {
	session, ok := c.Locals("user").(*webmodels.UserSession)
	if !ok || session == nil {
		return nil, fmt.Errorf("no user in context")
	}
	return session, nil
}

// taskResponse converts a stored task to its API shape
func taskResponse(task *dbmodels.UserTask) *webmodels.TaskResponse {
	remaining := gmconfig.MaxDailyTaskRequests - task.NewTaskRequests
	if remaining < 0 {
		remaining = 0
	}
	return &webmodels.TaskResponse{
		ID:                task.ID,
		TaskDate:          task.TaskDate.Format("2006-01-02"),
		Status:            task.Status,
		ExpiresAt:         task.ExpiresAt,
		NewTaskRequests:   task.NewTaskRequests,
		RemainingRequests: remaining,
		CreatedAt:         task.CreatedAt,
	}
}

// viewResponse converts a task view to its API shape
func viewResponse(view *tasks.View) *webmodels.TaskResponse {
	resp := taskResponse(view.Task)
	resp.Template = webmodels.NewTemplateResponse(view.Template)
	resp.IsExpired = view.IsExpired
	resp.RemainingRequests = view.RemainingRequests
	resp.Message = view.Message
	resp.MessageType = view.MessageType
	return resp
}
