package models

import (
	"time"

	"github.com/uptrace/bun"
)

// TaskTemplate is a reusable task definition with optional mood/energy
// prerequisites. A nil requirement matches any level.
type TaskTemplate struct {
	bun.BaseModel `bun:"table:task_templates,alias:tt"`

	ID                  int64                  `bun:"id,pk,autoincrement"`
	Title               string                 `bun:"title,notnull"`
	Description         string                 `bun:"description,notnull,default:''"`
	RequiredMoodLevel   *int                   `bun:"required_mood_level"`
	RequiredEnergyLevel *int                   `bun:"required_energy_level"`
	Metadata            map[string]interface{} `bun:"metadata,type:jsonb"`
	CreatedAt           time.Time              `bun:"created_at,notnull"`
	UpdatedAt           time.Time              `bun:"updated_at,notnull"`
}
