package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/greenmind-app/greenmind/backend/models"
	dbmodels "github.com/greenmind-app/greenmind/greenmind/database/models"
	"github.com/greenmind-app/greenmind/greenmind/tasks"
)

func newCheckInTestApp(svc TaskService, authenticated bool) *fiber.App {
	webApp := &WebApp{TaskService: svc}

	app := fiber.New()
	if authenticated {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user", &webmodels.UserSession{UserID: "user-1", Email: "test@example.com"})
			return c.Next()
		})
	}
	app.Post("/api/checkins", CheckInsCreate(webApp))
	return app
}

func postCheckIn(t *testing.T, app *fiber.App, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/checkins", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestCheckInsCreate(t *testing.T) {
	svc := &mockTaskService{
		CreateCheckInFunc: func(ctx context.Context, input tasks.CheckInInput) (*tasks.CheckInResult, error) {
			if input.UserID != "user-1" {
				t.Errorf("UserID = %q, want user-1", input.UserID)
			}
			return &tasks.CheckInResult{
				CheckIn:  &dbmodels.CheckIn{ID: 11, MoodLevel: input.MoodLevel, EnergyLevel: input.EnergyLevel},
				Task:     &dbmodels.UserTask{ID: 42, TemplateID: 2, Status: dbmodels.TaskStatusPending},
				Assigned: true,
			}, nil
		},
	}
	app := newCheckInTestApp(svc, true)

	resp := postCheckIn(t, app, webmodels.CheckInCreateRequest{MoodLevel: 3, EnergyLevel: 2})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
}

func TestCheckInsCreateRejectsLongNotes(t *testing.T) {
	app := newCheckInTestApp(&mockTaskService{}, true)

	notes := strings.Repeat("a", 501)
	resp := postCheckIn(t, app, webmodels.CheckInCreateRequest{MoodLevel: 3, EnergyLevel: 2, Notes: &notes})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCheckInsCreateRejectsBadLevels(t *testing.T) {
	app := newCheckInTestApp(&mockTaskService{}, true)

	resp := postCheckIn(t, app, webmodels.CheckInCreateRequest{MoodLevel: 0, EnergyLevel: 2})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	resp = postCheckIn(t, app, webmodels.CheckInCreateRequest{MoodLevel: 3, EnergyLevel: 4})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCheckInsCreateRequiresAuth(t *testing.T) {
	app := newCheckInTestApp(&mockTaskService{}, false)

	resp := postCheckIn(t, app, webmodels.CheckInCreateRequest{MoodLevel: 3, EnergyLevel: 2})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
