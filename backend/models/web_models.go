package models

import (
	"time"

	gmconfig "github.com/greenmind-app/greenmind/greenmind/config"
	dbmodels "github.com/greenmind-app/greenmind/greenmind/database/models"
)

// UserSession represents an authenticated user session
type UserSession struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterRequest is the payload for account creation
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CheckInCreateRequest is the payload for a daily check-in
type CheckInCreateRequest struct {
	MoodLevel   int     `json:"mood_level"`
	EnergyLevel int     `json:"energy_level"`
	Notes       *string `json:"notes,omitempty"`
}

// TaskPatchRequest carries the allowed task mutations. Exactly one of
// the fields must be set: a terminal status, or a bumped request
// counter asking for a replacement task.
type TaskPatchRequest struct {
	Status          *string `json:"status,omitempty"`
	NewTaskRequests *int    `json:"new_task_requests,omitempty"`
}

// TaskCreateRequest is the payload for direct task creation from a
// chosen template
type TaskCreateRequest struct {
	TemplateID int64  `json:"template_id"`
	UserID     string `json:"user_id"`
	CheckInID  *int64 `json:"check_in_id,omitempty"`
}

// EventCreateRequest is the payload for a client-reported event
type EventCreateRequest struct {
	EventType string                 `json:"event_type"`
	EntityID  *int64                 `json:"entity_id,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// PlantsUpdateRequest carries a full plants board replacement
type PlantsUpdateRequest struct {
	BoardState [][]interface{} `json:"board_state"`
}

// CheckInResponse is the API shape of a check-in with its outcome
type CheckInResponse struct {
	CheckIn      *dbmodels.CheckIn  `json:"check_in"`
	Task         *TaskResponse      `json:"task,omitempty"`
	TaskAssigned bool               `json:"task_assigned"`
}

// TaskResponse is the API shape of a user task with derived state
type TaskResponse struct {
	ID                int64             `json:"id"`
	Template          *TemplateResponse `json:"template,omitempty"`
	TaskDate          string            `json:"task_date"`
	Status            string            `json:"status"`
	ExpiresAt         time.Time         `json:"expires_at"`
	IsExpired         bool              `json:"is_expired"`
	NewTaskRequests   int               `json:"new_task_requests"`
	RemainingRequests int               `json:"remaining_requests"`
	Message           string            `json:"message,omitempty"`
	MessageType       string            `json:"message_type,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
}

// TemplateResponse is the API shape of a task template
type TemplateResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Constraints TemplateConstraints `json:"constraints"`
}

// TemplateConstraints lists the check-in levels a template accepts. A
// template with no level requirement lists the full scale.
type TemplateConstraints struct {
	MoodLevels   []int `json:"mood_levels"`
	EnergyLevels []int `json:"energy_levels"`
}

// levelRange expands a level requirement to the accepted values.
func levelRange(required *int, min, max int) []int {
	if required != nil {
		return []int{*required}
	}
	levels := make([]int, 0, max-min+1)
	for v := min; v <= max; v++ {
		levels = append(levels, v)
	}
	return levels
}

// NewTemplateResponse converts a stored template to its API shape
func NewTemplateResponse(t *dbmodels.TaskTemplate) *TemplateResponse {
	if t == nil {
		return nil
	}
	return &TemplateResponse{
		ID:          t.ID,
		Name:        t.Title,
		Description: t.Description,
		Constraints: TemplateConstraints{
			MoodLevels:   levelRange(t.RequiredMoodLevel, gmconfig.MoodLevelMin, gmconfig.MoodLevelMax),
			EnergyLevels: levelRange(t.RequiredEnergyLevel, gmconfig.EnergyLevelMin, gmconfig.EnergyLevelMax),
		},
	}
}

// DashboardStats contains aggregate counters for the admin dashboard
type DashboardStats struct {
	TotalCheckIns  int `json:"total_check_ins"`
	TotalTemplates int `json:"total_templates"`
	TasksPending   int `json:"tasks_pending"`
	TasksCompleted int `json:"tasks_completed"`
	TasksSkipped   int `json:"tasks_skipped"`
	EventsToday    int `json:"events_today"`
}
