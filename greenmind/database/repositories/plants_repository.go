package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/greenmind-app/greenmind/greenmind/database/models"
)

type PlantsRepository interface {
	Get(ctx context.Context, userID string) (*models.PlantsProgress, error)
	Upsert(ctx context.Context, progress *models.PlantsProgress) error
}

type plantsRepository struct {
	db *bun.DB
}

func NewPlantsRepository(db *bun.DB) PlantsRepository {
	return &plantsRepository{db: db}
}

func (r *plantsRepository) Get(ctx context.Context, userID string) (*models.PlantsProgress, error) {
	progress := new(models.PlantsProgress)
	err := r.db.NewSelect().
		Model(progress).
		Where("pp.user_id = ?", userID).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plants progress: %w", err)
	}
	return progress, nil
}

// Upsert overwrites the whole board; there is no partial update path.
func (r *plantsRepository) Upsert(ctx context.Context, progress *models.PlantsProgress) error {
	progress.LastUpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(progress).
		On("CONFLICT (user_id) DO UPDATE").
		Set("board_state = EXCLUDED.board_state").
		Set("last_updated_at = EXCLUDED.last_updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert plants progress: %w", err)
	}
	return nil
}
