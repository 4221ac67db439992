package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/greenmind-app/greenmind/backend/models"
	dbmodels "github.com/greenmind-app/greenmind/greenmind/database/models"
	"github.com/greenmind-app/greenmind/greenmind/database/repositories"
)

type mockTemplateRepository struct {
	GetByIDFunc func(ctx context.Context, id int64) (*dbmodels.TaskTemplate, error)
	ListFunc    func(ctx context.Context, filter repositories.TemplateFilter) ([]*dbmodels.TaskTemplate, error)
}

func (m *mockTemplateRepository) GetByID(ctx context.Context, id int64) (*dbmodels.TaskTemplate, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTemplateRepository) ListAll(ctx context.Context) ([]*dbmodels.TaskTemplate, error) {
	return nil, nil
}

func (m *mockTemplateRepository) List(ctx context.Context, filter repositories.TemplateFilter) ([]*dbmodels.TaskTemplate, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*dbmodels.TaskTemplate{}, nil
}

func (m *mockTemplateRepository) Count(ctx context.Context) (int, error) {
	return 0, nil
}

func newTemplateTestApp(repo repositories.TemplateRepository) *fiber.App {
	webApp := &WebApp{Repos: &webmodels.Repositories{Template: repo}}

	app := fiber.New()
	app.Get("/api/templates", TemplatesList(webApp))
	app.Get("/api/templates/:id", TemplatesDetail(webApp))
	return app
}

func getTemplates(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestTemplatesListFilters(t *testing.T) {
	repo := &mockTemplateRepository{
		ListFunc: func(ctx context.Context, filter repositories.TemplateFilter) ([]*dbmodels.TaskTemplate, error) {
			if filter.MoodLevel == nil || *filter.MoodLevel != 3 {
				t.Errorf("MoodLevel filter = %v, want 3", filter.MoodLevel)
			}
			if filter.EnergyLevel == nil || *filter.EnergyLevel != 2 {
				t.Errorf("EnergyLevel filter = %v, want 2", filter.EnergyLevel)
			}
			return []*dbmodels.TaskTemplate{{ID: 1, Title: "Spacer"}}, nil
		},
	}
	app := newTemplateTestApp(repo)

	resp := getTemplates(t, app, "/api/templates?mood_level=3&energy_level=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestTemplatesListRejectsOutOfRangeFilters(t *testing.T) {
	repo := &mockTemplateRepository{
		ListFunc: func(ctx context.Context, filter repositories.TemplateFilter) ([]*dbmodels.TaskTemplate, error) {
			t.Error("List should not be called for invalid filters")
			return nil, nil
		},
	}
	app := newTemplateTestApp(repo)

	for _, path := range []string{
		"/api/templates?mood_level=0",
		"/api/templates?mood_level=6",
		"/api/templates?mood_level=abc",
		"/api/templates?energy_level=0",
		"/api/templates?energy_level=4",
	} {
		resp := getTemplates(t, app, path)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, resp.StatusCode)
		}
	}
}

func TestTemplatesDetailNotFound(t *testing.T) {
	app := newTemplateTestApp(&mockTemplateRepository{})

	resp := getTemplates(t, app, "/api/templates/99")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
