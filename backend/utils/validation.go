package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/greenmind-app/greenmind/backend/models"
	"github.com/greenmind-app/greenmind/greenmind/config"
	dbmodels "github.com/greenmind-app/greenmind/greenmind/database/models"
)

var (
	// ValidEmailRegex validates email addresses
	ValidEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// User-facing validation messages
const (
	MsgEmailRequired      = "Podaj adres e-mail"
	MsgEmailInvalid       = "Podaj poprawny adres e-mail"
	MsgPasswordRequired   = "Podaj hasło"
	MsgPasswordTooShort   = "Hasło musi mieć minimum 8 znaków"
	MsgPasswordsMismatch  = "Hasła muszą być identyczne"
	MsgNotesTooLong       = "Notatki mogą mieć maksymalnie 500 znaków"
	MsgRequestLimit       = "Osiągnięto limit 3 nowych zadań dziennie"
	MsgTaskAlreadyClosed  = "To zadanie zostało już zakończone"
	MsgInvalidBoardLayout = "Nieprawidłowy układ planszy roślin"
)

// ValidateRegisterRequest validates an account creation request
func ValidateRegisterRequest(req *models.RegisterRequest) []models.ValidationError {
	var errors []models.ValidationError

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errors = append(errors, models.ValidationError{Field: "email", Message: MsgEmailRequired})
	} else if !ValidEmailRegex.MatchString(email) {
		errors = append(errors, models.ValidationError{Field: "email", Message: MsgEmailInvalid})
	}

	if req.Password == "" {
		errors = append(errors, models.ValidationError{Field: "password", Message: MsgPasswordRequired})
	} else if len(req.Password) < config.PasswordMinLength {
		errors = append(errors, models.ValidationError{Field: "password", Message: MsgPasswordTooShort})
	}

	if req.ConfirmPassword != req.Password {
		errors = append(errors, models.ValidationError{Field: "confirm_password", Message: MsgPasswordsMismatch})
	}

	return errors
}

// ValidateLoginRequest validates a login request
func ValidateLoginRequest(req *models.LoginRequest) []models.ValidationError {
	var errors []models.ValidationError

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errors = append(errors, models.ValidationError{Field: "email", Message: MsgEmailRequired})
	} else if !ValidEmailRegex.MatchString(email) {
		errors = append(errors, models.ValidationError{Field: "email", Message: MsgEmailInvalid})
	}

	if req.Password == "" {
		errors = append(errors, models.ValidationError{Field: "password", Message: MsgPasswordRequired})
	}

	return errors
}

// ValidateCheckInCreateRequest validates a daily check-in request
func ValidateCheckInCreateRequest(req *models.CheckInCreateRequest) []models.ValidationError {
	var errors []models.ValidationError

	if req.MoodLevel < config.MoodLevelMin || req.MoodLevel > config.MoodLevelMax {
		errors = append(errors, models.ValidationError{
			Field:   "mood_level",
			Message: fmt.Sprintf("Nastrój musi być w zakresie %d-%d", config.MoodLevelMin, config.MoodLevelMax),
		})
	}

	if req.EnergyLevel < config.EnergyLevelMin || req.EnergyLevel > config.EnergyLevelMax {
		errors = append(errors, models.ValidationError{
			Field:   "energy_level",
			Message: fmt.Sprintf("Energia musi być w zakresie %d-%d", config.EnergyLevelMin, config.EnergyLevelMax),
		})
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > config.NotesMaxLength {
		errors = append(errors, models.ValidationError{Field: "notes", Message: MsgNotesTooLong})
	}

	return errors
}

// ValidateTaskPatchRequest validates a task mutation request. Exactly
// one mutation must be present.
func ValidateTaskPatchRequest(req *models.TaskPatchRequest) []models.ValidationError {
	var errors []models.ValidationError

	if req.Status == nil && req.NewTaskRequests == nil {
		errors = append(errors, models.ValidationError{
			Field:   "status",
			Message: "Brak zmian do zastosowania",
		})
		return errors
	}
	if req.Status != nil && req.NewTaskRequests != nil {
		errors = append(errors, models.ValidationError{
			Field:   "status",
			Message: "Można zmienić tylko jedno pole naraz",
		})
		return errors
	}

	if req.Status != nil {
		switch *req.Status {
		case dbmodels.TaskStatusCompleted, dbmodels.TaskStatusSkipped:
		default:
			errors = append(errors, models.ValidationError{
				Field:   "status",
				Message: fmt.Sprintf("Nieprawidłowy status: %s", *req.Status),
			})
		}
	}

	if req.NewTaskRequests != nil {
		if *req.NewTaskRequests < 0 || *req.NewTaskRequests > config.MaxDailyTaskRequests {
			errors = append(errors, models.ValidationError{
				Field:   "new_task_requests",
				Message: fmt.Sprintf("Licznik nowych zadań musi być w zakresie 0-%d", config.MaxDailyTaskRequests),
			})
		}
	}

	return errors
}

// ValidateEventCreateRequest validates a client-reported event
func ValidateEventCreateRequest(req *models.EventCreateRequest) []models.ValidationError {
	var errors []models.ValidationError

	if req.EventType == "" {
		errors = append(errors, models.ValidationError{Field: "event_type", Message: "Podaj typ zdarzenia"})
	} else if !dbmodels.KnownEventType(req.EventType) {
		errors = append(errors, models.ValidationError{
			Field:   "event_type",
			Message: fmt.Sprintf("Nieznany typ zdarzenia: %s", req.EventType),
		})
	}

	return errors
}

// ValidatePlantsBoard validates the plants board dimensions
func ValidatePlantsBoard(board [][]interface{}) []models.ValidationError {
	if len(board) != config.PlantsBoardRows {
		return []models.ValidationError{{Field: "board_state", Message: MsgInvalidBoardLayout}}
	}
	for _, row := range board {
		if len(row) != config.PlantsBoardCols {
			return []models.ValidationError{{Field: "board_state", Message: MsgInvalidBoardLayout}}
		}
	}
	return nil
}
