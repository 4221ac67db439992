package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/greenmind-app/greenmind/greenmind/config"
	"github.com/greenmind-app/greenmind/greenmind/database/models"
	"github.com/uptrace/bun"
)

// ErrTaskExists signals the (user_id, task_date) uniqueness constraint.
// It is an expected conflict, not a failure: the caller already has a
// task for that day.
var ErrTaskExists = errors.New("task already exists for this date")

// UserTaskFilter narrows List results. Zero values mean "no filter".
type UserTaskFilter struct {
	Status string
	Date   time.Time
	Page   int
	Limit  int
}

type UserTaskRepository interface {
	Create(ctx context.Context, task *models.UserTask) error
	CreateTx(ctx context.Context, tx bun.Tx, task *models.UserTask) error
	GetOwned(ctx context.Context, id int64, userID string) (*models.UserTask, error)
	GetByDate(ctx context.Context, userID string, date time.Time) (*models.UserTask, error)
	GetByDateTx(ctx context.Context, tx bun.Tx, userID string, date time.Time) (*models.UserTask, error)
	List(ctx context.Context, userID string, filter UserTaskFilter) ([]*models.UserTask, error)
	MarkStatus(ctx context.Context, id int64, userID, status string) (*models.UserTask, error)
	ReassignTemplate(ctx context.Context, id int64, userID string, templateID int64) (*models.UserTask, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

type userTaskRepository struct {
	db *bun.DB
}

func NewUserTaskRepository(db *bun.DB) UserTaskRepository {
	return &userTaskRepository{db: db}
}

func (r *userTaskRepository) Create(ctx context.Context, task *models.UserTask) error {
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := r.db.NewInsert().Model(task).Returning("*").Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTaskExists
		}
		return fmt.Errorf("failed to create user task: %w", err)
	}
	return nil
}

// CreateTx inserts inside an open transaction. The duplicate-day case
// uses ON CONFLICT DO NOTHING: a raw unique violation would abort the
// whole transaction and take the caller's other writes down with it.
func (r *userTaskRepository) CreateTx(ctx context.Context, tx bun.Tx, task *models.UserTask) error {
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	res, err := tx.NewInsert().
		Model(task).
		On("CONFLICT (user_id, task_date) DO NOTHING").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create user task: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to create user task: %w", err)
	}
	if rows == 0 {
		return ErrTaskExists
	}
	return nil
}

// GetOwned returns the task only when it belongs to userID. A row owned
// by someone else looks identical to a missing row (nil, nil).
func (r *userTaskRepository) GetOwned(ctx context.Context, id int64, userID string) (*models.UserTask, error) {
	task := new(models.UserTask)
	err := r.db.NewSelect().
		Model(task).
		Where("ut.id = ?", id).
		Where("ut.user_id = ?", userID).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user task: %w", err)
	}
	return task, nil
}

func (r *userTaskRepository) GetByDate(ctx context.Context, userID string, date time.Time) (*models.UserTask, error) {
	task := new(models.UserTask)
	err := r.db.NewSelect().
		Model(task).
		Where("ut.user_id = ?", userID).
		Where("ut.task_date = ?", date).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user task by date: %w", err)
	}
	return task, nil
}

func (r *userTaskRepository) GetByDateTx(ctx context.Context, tx bun.Tx, userID string, date time.Time) (*models.UserTask, error) {
	task := new(models.UserTask)
	err := tx.NewSelect().
		Model(task).
		Where("ut.user_id = ?", userID).
		Where("ut.task_date = ?", date).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user task by date: %w", err)
	}
	return task, nil
}

func (r *userTaskRepository) List(ctx context.Context, userID string, filter UserTaskFilter) ([]*models.UserTask, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = config.DefaultPageSize
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}

	var tasks []*models.UserTask
	q := r.db.NewSelect().
		Model(&tasks).
		Where("ut.user_id = ?", userID)

	if filter.Status != "" {
		q = q.Where("ut.status = ?", filter.Status)
	}
	if !filter.Date.IsZero() {
		q = q.Where("ut.task_date = ?", filter.Date)
	}

	err := q.Order("ut.task_date DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list user tasks: %w", err)
	}
	return tasks, nil
}

// MarkStatus applies a pending-only status transition. It returns
// (nil, nil) when no pending row matched, leaving the caller to work
// out whether the task is missing, foreign, or already terminal.
func (r *userTaskRepository) MarkStatus(ctx context.Context, id int64, userID, status string) (*models.UserTask, error) {
	task := new(models.UserTask)
	err := r.db.NewUpdate().
		Model(task).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Where("status = ?", models.TaskStatusPending).
		Returning("*").
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return task, nil
}

// ReassignTemplate increments the replacement counter and swaps the
// template in one conditional statement, so two concurrent requests
// can never both pass the cap.
func (r *userTaskRepository) ReassignTemplate(ctx context.Context, id int64, userID string, templateID int64) (*models.UserTask, error) {
	task := new(models.UserTask)
	err := r.db.NewUpdate().
		Model(task).
		Set("new_task_requests = new_task_requests + 1").
		Set("template_id = ?", templateID).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Where("status = ?", models.TaskStatusPending).
		Where("new_task_requests < ?", config.MaxDailyTaskRequests).
		Returning("*").
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reassign task template: %w", err)
	}
	return task, nil
}

func (r *userTaskRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.UserTask)(nil)).
		Where("status = ?", status).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count user tasks: %w", err)
	}
	return count, nil
}
