package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/greenmind-app/greenmind/greenmind/config"
	"github.com/greenmind-app/greenmind/greenmind/database/models"
)

// EventRepository is append-only: events are inserted, listed, and
// eventually purged by the retention sweep, never updated.
type EventRepository interface {
	Insert(ctx context.Context, event *models.UserEvent) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.UserEvent, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type eventRepository struct {
	db *bun.DB
}

func NewEventRepository(db *bun.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Insert(ctx context.Context, event *models.UserEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	_, err := r.db.NewInsert().Model(event).Returning("*").Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert user event: %w", err)
	}
	return nil
}

func (r *eventRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.UserEvent, error) {
	if limit < 1 {
		limit = config.DefaultPageSize
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}

	var events []*models.UserEvent
	err := r.db.NewSelect().
		Model(&events).
		Where("ue.user_id = ?", userID).
		Order("ue.occurred_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list user events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.UserEvent)(nil)).
		Where("occurred_at > ?", since).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count user events: %w", err)
	}
	return count, nil
}

func (r *eventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.NewDelete().
		Model((*models.UserEvent)(nil)).
		Where("occurred_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to purge user events: %w", err)
	}
	return result.RowsAffected()
}
