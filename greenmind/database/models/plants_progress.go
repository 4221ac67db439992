package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PlantsProgress holds the 5x6 reward board. One row per user,
// overwritten wholesale on update.
type PlantsProgress struct {
	bun.BaseModel `bun:"table:user_plants_progress,alias:pp"`

	UserID        string          `bun:"user_id,pk"`
	BoardState    [][]interface{} `bun:"board_state,type:jsonb"`
	LastUpdatedAt time.Time       `bun:"last_updated_at,notnull"`
}
