package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/greenmind-app/greenmind/greenmind/config"
	"github.com/greenmind-app/greenmind/greenmind/database/models"
)

type CheckInRepository interface {
	Create(ctx context.Context, checkIn *models.CheckIn) error
	CreateTx(ctx context.Context, tx bun.Tx, checkIn *models.CheckIn) error
	GetOwned(ctx context.Context, id int64, userID string) (*models.CheckIn, error)
	List(ctx context.Context, userID string, page, limit int) ([]*models.CheckIn, error)
	Count(ctx context.Context) (int, error)
}

type checkInRepository struct {
	db *bun.DB
}

func NewCheckInRepository(db *bun.DB) CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *models.CheckIn) error {
	if checkIn.At.IsZero() {
		checkIn.At = time.Now()
	}
	_, err := r.db.NewInsert().Model(checkIn).Returning("*").Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create check-in: %w", err)
	}
	return nil
}

func (r *checkInRepository) CreateTx(ctx context.Context, tx bun.Tx, checkIn *models.CheckIn) error {
	if checkIn.At.IsZero() {
		checkIn.At = time.Now()
	}
	_, err := tx.NewInsert().Model(checkIn).Returning("*").Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create check-in: %w", err)
	}
	return nil
}

func (r *checkInRepository) GetOwned(ctx context.Context, id int64, userID string) (*models.CheckIn, error) {
	checkIn := new(models.CheckIn)
	err := r.db.NewSelect().
		Model(checkIn).
		Where("ci.id = ?", id).
		Where("ci.user_id = ?", userID).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}
	return checkIn, nil
}

func (r *checkInRepository) List(ctx context.Context, userID string, page, limit int) ([]*models.CheckIn, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = config.DefaultPageSize
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}

	var checkIns []*models.CheckIn
	err := r.db.NewSelect().
		Model(&checkIns).
		Where("ci.user_id = ?", userID).
		Order("ci.at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkIns, nil
}

func (r *checkInRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.CheckIn)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count check-ins: %w", err)
	}
	return count, nil
}
