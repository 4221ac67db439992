package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/greenmind-app/greenmind/backend/models"
	dbmodels "github.com/greenmind-app/greenmind/greenmind/database/models"
	"github.com/greenmind-app/greenmind/greenmind/database/repositories"
	"github.com/greenmind-app/greenmind/greenmind/tasks"
)

type mockTaskService struct {
	CreateCheckInFunc func(ctx context.Context, input tasks.CheckInInput) (*tasks.CheckInResult, error)
	AssignFunc        func(ctx context.Context, userID string, templateID int64, checkInID *int64) (*dbmodels.UserTask, error)
	GetFunc           func(ctx context.Context, id int64, userID string) (*tasks.View, error)
	ListFunc          func(ctx context.Context, userID string, filter repositories.UserTaskFilter) ([]*dbmodels.UserTask, error)
	TodayFunc         func(ctx context.Context, userID string) (*tasks.View, error)
	CompleteFunc      func(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error)
	SkipFunc          func(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error)
	RequestNewFunc    func(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error)
}

func (m *mockTaskService) CreateCheckIn(ctx context.Context, input tasks.CheckInInput) (*tasks.CheckInResult, error) {
	return m.CreateCheckInFunc(ctx, input)
}

func (m *mockTaskService) Assign(ctx context.Context, userID string, templateID int64, checkInID *int64) (*dbmodels.UserTask, error) {
	return m.AssignFunc(ctx, userID, templateID, checkInID)
}

func (m *mockTaskService) Get(ctx context.Context, id int64, userID string) (*tasks.View, error) {
	return m.GetFunc(ctx, id, userID)
}

func (m *mockTaskService) List(ctx context.Context, userID string, filter repositories.UserTaskFilter) ([]*dbmodels.UserTask, error) {
	return m.ListFunc(ctx, userID, filter)
}

func (m *mockTaskService) Today(ctx context.Context, userID string) (*tasks.View, error) {
	return m.TodayFunc(ctx, userID)
}

func (m *mockTaskService) Complete(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error) {
	return m.CompleteFunc(ctx, id, userID)
}

func (m *mockTaskService) Skip(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error) {
	return m.SkipFunc(ctx, id, userID)
}

func (m *mockTaskService) RequestNew(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error) {
	return m.RequestNewFunc(ctx, id, userID)
}

// newTaskTestApp builds a fiber app with an authenticated test user.
func newTaskTestApp(svc TaskService) *fiber.App {
	webApp := &WebApp{TaskService: svc}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &webmodels.UserSession{UserID: "user-1", Email: "test@example.com"})
		return c.Next()
	})
	app.Get("/api/user-tasks/today", TasksToday(webApp))
	app.Post("/api/user-tasks", TasksCreate(webApp))
	app.Patch("/api/user-tasks/:id", TasksPatch(webApp))
	return app
}

func patchTask(t *testing.T, app *fiber.App, id string, body interface{}) (*http.Response, *webmodels.APIResponse) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPatch, "/api/user-tasks/"+id, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	var apiResp webmodels.APIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp, &apiResp
}

func TestTasksPatchComplete(t *testing.T) {
	svc := &mockTaskService{
		CompleteFunc: func(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error) {
			if id != 9 || userID != "user-1" {
				t.Errorf("unexpected args: id=%d user=%q", id, userID)
			}
			return &dbmodels.UserTask{ID: 9, Status: dbmodels.TaskStatusCompleted}, nil
		},
	}
	app := newTaskTestApp(svc)

	status := dbmodels.TaskStatusCompleted
	resp, apiResp := patchTask(t, app, "9", webmodels.TaskPatchRequest{Status: &status})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !apiResp.Success {
		t.Error("expected success response")
	}
}

func TestTasksPatchSkip(t *testing.T) {
	called := false
	svc := &mockTaskService{
		SkipFunc: func(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error) {
			called = true
			return &dbmodels.UserTask{ID: 9, Status: dbmodels.TaskStatusSkipped}, nil
		},
	}
	app := newTaskTestApp(svc)

	status := dbmodels.TaskStatusSkipped
	resp, _ := patchTask(t, app, "9", webmodels.TaskPatchRequest{Status: &status})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !called {
		t.Error("Skip was not invoked")
	}
}

func TestTasksPatchRequestNew(t *testing.T) {
	svc := &mockTaskService{
		RequestNewFunc: func(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error) {
			return &dbmodels.UserTask{ID: 9, TemplateID: 5, NewTaskRequests: 1, Status: dbmodels.TaskStatusPending}, nil
		},
	}
	app := newTaskTestApp(svc)

	requests := 1
	resp, apiResp := patchTask(t, app, "9", webmodels.TaskPatchRequest{NewTaskRequests: &requests})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if apiResp.Message != "Przydzielono nowe zadanie" {
		t.Errorf("unexpected message: %q", apiResp.Message)
	}
}

func TestTasksPatchZeroRequestCounter(t *testing.T) {
	svc := &mockTaskService{
		GetFunc: func(ctx context.Context, id int64, userID string) (*tasks.View, error) {
			return &tasks.View{Task: &dbmodels.UserTask{ID: 9, Status: dbmodels.TaskStatusPending}}, nil
		},
		RequestNewFunc: func(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error) {
			t.Error("a zero counter must not request a replacement")
			return nil, nil
		},
	}
	app := newTaskTestApp(svc)

	requests := 0
	resp, apiResp := patchTask(t, app, "9", webmodels.TaskPatchRequest{NewTaskRequests: &requests})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if apiResp.Message != "Zadanie zaktualizowane" {
		t.Errorf("unexpected message: %q", apiResp.Message)
	}
}

func TestTasksPatchLimitExceeded(t *testing.T) {
	svc := &mockTaskService{
		RequestNewFunc: func(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error) {
			return nil, tasks.ErrLimitExceeded
		},
	}
	app := newTaskTestApp(svc)

	requests := 3
	resp, apiResp := patchTask(t, app, "9", webmodels.TaskPatchRequest{NewTaskRequests: &requests})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if apiResp.Error == nil || apiResp.Error.Message != "Osiągnięto limit 3 nowych zadań dziennie" {
		t.Errorf("unexpected error payload: %+v", apiResp.Error)
	}
}

func TestTasksPatchAlreadyClosed(t *testing.T) {
	svc := &mockTaskService{
		CompleteFunc: func(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error) {
			return nil, tasks.ErrInvalidTransition
		},
	}
	app := newTaskTestApp(svc)

	status := dbmodels.TaskStatusCompleted
	resp, _ := patchTask(t, app, "9", webmodels.TaskPatchRequest{Status: &status})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestTasksPatchNotFound(t *testing.T) {
	svc := &mockTaskService{
		CompleteFunc: func(ctx context.Context, id int64, userID string) (*dbmodels.UserTask, error) {
			return nil, tasks.ErrNotFound
		},
	}
	app := newTaskTestApp(svc)

	status := dbmodels.TaskStatusCompleted
	resp, _ := patchTask(t, app, "42", webmodels.TaskPatchRequest{Status: &status})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestTasksPatchRejectsInvalidStatus(t *testing.T) {
	app := newTaskTestApp(&mockTaskService{})

	status := "archived"
	resp, _ := patchTask(t, app, "9", webmodels.TaskPatchRequest{Status: &status})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestTasksPatchRejectsEmptyPatch(t *testing.T) {
	app := newTaskTestApp(&mockTaskService{})

	resp, _ := patchTask(t, app, "9", webmodels.TaskPatchRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestTasksCreate(t *testing.T) {
	svc := &mockTaskService{
		AssignFunc: func(ctx context.Context, userID string, templateID int64, checkInID *int64) (*dbmodels.UserTask, error) {
			if userID != "user-1" || templateID != 4 {
				t.Errorf("unexpected args: user=%q template=%d", userID, templateID)
			}
			return &dbmodels.UserTask{ID: 42, TemplateID: 4, Status: dbmodels.TaskStatusPending}, nil
		},
	}
	app := newTaskTestApp(svc)

	payload, _ := json.Marshal(webmodels.TaskCreateRequest{TemplateID: 4, UserID: "user-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/user-tasks", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
}

func TestTasksCreateRejectsForeignUser(t *testing.T) {
	app := newTaskTestApp(&mockTaskService{})

	payload, _ := json.Marshal(webmodels.TaskCreateRequest{TemplateID: 4, UserID: "someone-else"})
	req := httptest.NewRequest(http.MethodPost, "/api/user-tasks", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestTasksCreateMissingTemplate(t *testing.T) {
	svc := &mockTaskService{
		AssignFunc: func(ctx context.Context, userID string, templateID int64, checkInID *int64) (*dbmodels.UserTask, error) {
			return nil, tasks.ErrNotFound
		},
	}
	app := newTaskTestApp(svc)

	payload, _ := json.Marshal(webmodels.TaskCreateRequest{TemplateID: 999})
	req := httptest.NewRequest(http.MethodPost, "/api/user-tasks", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestTasksToday(t *testing.T) {
	svc := &mockTaskService{
		TodayFunc: func(ctx context.Context, userID string) (*tasks.View, error) {
			return &tasks.View{
				Task: &dbmodels.UserTask{
					ID:        9,
					Status:    dbmodels.TaskStatusPending,
					ExpiresAt: time.Now().Add(time.Hour),
				},
				Template:          &dbmodels.TaskTemplate{ID: 4, Title: "Krótki spacer"},
				RemainingRequests: 3,
				Message:           "Małe kroki prowadzą do wielkich zmian! 🌱",
				MessageType:       tasks.MessageTypeMotivation,
			}, nil
		},
	}
	app := newTaskTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/user-tasks/today", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	data, _ := io.ReadAll(resp.Body)
	var apiResp struct {
		Success bool                    `json:"success"`
		Data    *webmodels.TaskResponse `json:"data"`
	}
	if err := json.Unmarshal(data, &apiResp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if apiResp.Data.Template == nil || apiResp.Data.Template.Name != "Krótki spacer" {
		t.Errorf("unexpected template in response: %+v", apiResp.Data.Template)
	}
	if apiResp.Data.RemainingRequests != 3 {
		t.Errorf("RemainingRequests = %d, want 3", apiResp.Data.RemainingRequests)
	}
}

func TestTasksTodayNotFound(t *testing.T) {
	svc := &mockTaskService{
		TodayFunc: func(ctx context.Context, userID string) (*tasks.View, error) {
			return nil, tasks.ErrNotFound
		},
	}
	app := newTaskTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/user-tasks/today", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
