package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserEvent is an append-only audit record. Rows are never updated.
type UserEvent struct {
	bun.BaseModel `bun:"table:user_events,alias:ue"`

	ID         int64                  `bun:"id,pk,autoincrement"`
	UserID     string                 `bun:"user_id,notnull"`
	EventType  string                 `bun:"event_type,notnull"`
	EntityID   *int64                 `bun:"entity_id"`
	OccurredAt time.Time              `bun:"occurred_at,notnull"`
	Payload    map[string]interface{} `bun:"payload,type:jsonb"`
}

// Event type constants
const (
	EventCheckInCreated = "CHECKIN_CREATED"
	EventTaskAssigned   = "TASK_ASSIGNED"
	EventTaskDone       = "TASK_DONE"
	EventTaskSkipped    = "TASK_SKIPPED"
	EventRequestNew     = "REQUEST_NEW"
)

// KnownEventType reports whether s is one of the recognized event types.
func KnownEventType(s string) bool {
	switch s {
	case EventCheckInCreated, EventTaskAssigned, EventTaskDone, EventTaskSkipped, EventRequestNew:
		return true
	}
	return false
}
