package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
	"github.com/uptrace/bun"

	"github.com/greenmind-app/greenmind/greenmind/config"
	"github.com/greenmind-app/greenmind/greenmind/database/models"
)

// TemplateFilter applies exact-match filters for the public listing
// endpoint. Nil means "no filter on this level".
type TemplateFilter struct {
	MoodLevel   *int
	EnergyLevel *int
	Search      string
}

type TemplateRepository interface {
	GetByID(ctx context.Context, id int64) (*models.TaskTemplate, error)
	ListAll(ctx context.Context) ([]*models.TaskTemplate, error)
	List(ctx context.Context, filter TemplateFilter) ([]*models.TaskTemplate, error)
	Count(ctx context.Context) (int, error)
}

type templateRepository struct {
	db    *bun.DB
	cache *lru.Cache
}

func NewTemplateRepository(db *bun.DB) TemplateRepository {
	// Templates are read-mostly reference data; a small LRU avoids a
	// round trip on every task view.
	cache, _ := lru.New(config.TemplateCacheSize)
	return &templateRepository{db: db, cache: cache}
}

func (r *templateRepository) GetByID(ctx context.Context, id int64) (*models.TaskTemplate, error) {
	if cached, ok := r.cache.Get(id); ok {
		return cached.(*models.TaskTemplate), nil
	}

	template := new(models.TaskTemplate)
	err := r.db.NewSelect().
		Model(template).
		Where("tt.id = ?", id).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task template: %w", err)
	}

	r.cache.Add(id, template)
	return template, nil
}

func (r *templateRepository) ListAll(ctx context.Context) ([]*models.TaskTemplate, error) {
	var templates []*models.TaskTemplate
	err := r.db.NewSelect().
		Model(&templates).
		Order("tt.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list task templates: %w", err)
	}
	return templates, nil
}

func (r *templateRepository) List(ctx context.Context, filter TemplateFilter) ([]*models.TaskTemplate, error) {
	var templates []*models.TaskTemplate
	q := r.db.NewSelect().Model(&templates)

	if filter.MoodLevel != nil {
		q = q.Where("tt.required_mood_level = ?", *filter.MoodLevel)
	}
	if filter.EnergyLevel != nil {
		q = q.Where("tt.required_energy_level = ?", *filter.EnergyLevel)
	}

	if err := q.Order("tt.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list task templates: %w", err)
	}

	if filter.Search != "" {
		templates = fuzzyFilter(templates, filter.Search)
	}
	return templates, nil
}

func (r *templateRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.TaskTemplate)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count task templates: %w", err)
	}
	return count, nil
}

// fuzzyFilter ranks templates by fuzzy title match, best first.
func fuzzyFilter(templates []*models.TaskTemplate, query string) []*models.TaskTemplate {
	titles := make([]string, len(templates))
	for i, t := range templates {
		titles[i] = t.Title
	}

	matches := fuzzy.Find(query, titles)
	result := make([]*models.TaskTemplate, 0, len(matches))
	for _, m := range matches {
		result = append(result, templates[m.Index])
	}
	return result
}
