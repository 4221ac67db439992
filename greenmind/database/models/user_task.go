package models

import (
	"time"

	"github.com/uptrace/bun"
)

type UserTask struct {
	bun.BaseModel `bun:"table:user_tasks,alias:ut"`

	ID              int64                  `bun:"id,pk,autoincrement"`
	UserID          string                 `bun:"user_id,notnull"`
	TemplateID      int64                  `bun:"template_id,notnull"`
	CheckInID       *int64                 `bun:"check_in_id"`
	TaskDate        time.Time              `bun:"task_date,notnull,type:date"`
	ExpiresAt       time.Time              `bun:"expires_at,notnull"`
	Status          string                 `bun:"status,notnull,default:'pending'"`
	NewTaskRequests int                    `bun:"new_task_requests,notnull,default:0"`
	Metadata        map[string]interface{} `bun:"metadata,type:jsonb"`
	CreatedAt       time.Time              `bun:"created_at,notnull"`
	UpdatedAt       time.Time              `bun:"updated_at,notnull"`
}

// Task status constants
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
	TaskStatusSkipped   = "skipped"
)

// IsTerminal reports whether the status permits no further transitions.
func (t *UserTask) IsTerminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusSkipped
}
