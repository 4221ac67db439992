package models

import (
	"time"

	"github.com/uptrace/bun"
)

type CheckIn struct {
	bun.BaseModel `bun:"table:check_ins,alias:ci"`

	ID          int64                  `bun:"id,pk,autoincrement"`
	UserID      string                 `bun:"user_id,notnull"`
	MoodLevel   int                    `bun:"mood_level,notnull"`
	EnergyLevel int                    `bun:"energy_level,notnull"`
	At          time.Time              `bun:"at,notnull"`
	Notes       *string                `bun:"notes"`
	Metadata    map[string]interface{} `bun:"metadata,type:jsonb"`
}
