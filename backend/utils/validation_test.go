package utils

import (
	"strings"
	"testing"

	"github.com/greenmind-app/greenmind/backend/models"
	dbmodels "github.com/greenmind-app/greenmind/greenmind/database/models"
)

func strPtr(s string) *string { return &s }

func TestValidateRegisterRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       models.RegisterRequest
		wantField string
	}{
		{
			name:      "missing email",
			req:       models.RegisterRequest{Password: "password123", ConfirmPassword: "password123"},
			wantField: "email",
		},
		{
			name:      "invalid email",
			req:       models.RegisterRequest{Email: "not-an-email", Password: "password123", ConfirmPassword: "password123"},
			wantField: "email",
		},
		{
			name:      "short password",
			req:       models.RegisterRequest{Email: "a@b.pl", Password: "short", ConfirmPassword: "short"},
			wantField: "password",
		},
		{
			name:      "mismatched passwords",
			req:       models.RegisterRequest{Email: "a@b.pl", Password: "password123", ConfirmPassword: "password456"},
			wantField: "confirm_password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegisterRequest(&tt.req)
			if len(errs) == 0 {
				t.Fatal("expected validation errors")
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got %v", tt.wantField, errs)
			}
		})
	}

	valid := models.RegisterRequest{Email: "a@b.pl", Password: "password123", ConfirmPassword: "password123"}
	if errs := ValidateRegisterRequest(&valid); len(errs) != 0 {
		t.Errorf("valid request produced errors: %v", errs)
	}
}

func TestValidateCheckInCreateRequest(t *testing.T) {
	valid := models.CheckInCreateRequest{MoodLevel: 3, EnergyLevel: 2}
	if errs := ValidateCheckInCreateRequest(&valid); len(errs) != 0 {
		t.Errorf("valid request produced errors: %v", errs)
	}

	badMood := models.CheckInCreateRequest{MoodLevel: 6, EnergyLevel: 2}
	if errs := ValidateCheckInCreateRequest(&badMood); len(errs) != 1 || errs[0].Field != "mood_level" {
		t.Errorf("expected mood_level error, got %v", errs)
	}

	badEnergy := models.CheckInCreateRequest{MoodLevel: 3, EnergyLevel: 0}
	if errs := ValidateCheckInCreateRequest(&badEnergy); len(errs) != 1 || errs[0].Field != "energy_level" {
		t.Errorf("expected energy_level error, got %v", errs)
	}

	longNotes := models.CheckInCreateRequest{MoodLevel: 3, EnergyLevel: 2, Notes: strPtr(strings.Repeat("ż", 501))}
	errs := ValidateCheckInCreateRequest(&longNotes)
	if len(errs) != 1 || errs[0].Message != MsgNotesTooLong {
		t.Errorf("expected notes length error, got %v", errs)
	}

	// Multibyte notes count runes, not bytes
	okNotes := models.CheckInCreateRequest{MoodLevel: 3, EnergyLevel: 2, Notes: strPtr(strings.Repeat("ż", 500))}
	if errs := ValidateCheckInCreateRequest(&okNotes); len(errs) != 0 {
		t.Errorf("500-rune notes should pass, got %v", errs)
	}
}

func TestValidateTaskPatchRequest(t *testing.T) {
	if errs := ValidateTaskPatchRequest(&models.TaskPatchRequest{}); len(errs) == 0 {
		t.Error("empty patch should fail")
	}

	status := dbmodels.TaskStatusCompleted
	requests := 1
	both := models.TaskPatchRequest{Status: &status, NewTaskRequests: &requests}
	if errs := ValidateTaskPatchRequest(&both); len(errs) == 0 {
		t.Error("patch with both mutations should fail")
	}

	bad := "archived"
	if errs := ValidateTaskPatchRequest(&models.TaskPatchRequest{Status: &bad}); len(errs) == 0 {
		t.Error("unknown status should fail")
	}

	pending := dbmodels.TaskStatusPending
	if errs := ValidateTaskPatchRequest(&models.TaskPatchRequest{Status: &pending}); len(errs) == 0 {
		t.Error("pending is not a valid target status")
	}

	zero := 0
	if errs := ValidateTaskPatchRequest(&models.TaskPatchRequest{NewTaskRequests: &zero}); len(errs) != 0 {
		t.Errorf("zero request counter should pass, got %v", errs)
	}

	negative := -1
	if errs := ValidateTaskPatchRequest(&models.TaskPatchRequest{NewTaskRequests: &negative}); len(errs) == 0 {
		t.Error("negative request counter should fail")
	}

	four := 4
	if errs := ValidateTaskPatchRequest(&models.TaskPatchRequest{NewTaskRequests: &four}); len(errs) == 0 {
		t.Error("over-cap request counter should fail")
	}

	skipped := dbmodels.TaskStatusSkipped
	if errs := ValidateTaskPatchRequest(&models.TaskPatchRequest{Status: &skipped}); len(errs) != 0 {
		t.Errorf("skipped status should pass, got %v", errs)
	}

	if errs := ValidateTaskPatchRequest(&models.TaskPatchRequest{NewTaskRequests: &requests}); len(errs) != 0 {
		t.Errorf("valid request counter should pass, got %v", errs)
	}
}

func TestValidateEventCreateRequest(t *testing.T) {
	if errs := ValidateEventCreateRequest(&models.EventCreateRequest{}); len(errs) == 0 {
		t.Error("missing event type should fail")
	}

	if errs := ValidateEventCreateRequest(&models.EventCreateRequest{EventType: "SOMETHING_ELSE"}); len(errs) == 0 {
		t.Error("unknown event type should fail")
	}

	valid := models.EventCreateRequest{EventType: dbmodels.EventTaskDone}
	if errs := ValidateEventCreateRequest(&valid); len(errs) != 0 {
		t.Errorf("known event type should pass, got %v", errs)
	}
}

func TestValidatePlantsBoard(t *testing.T) {
	board := make([][]interface{}, 5)
	for i := range board {
		board[i] = make([]interface{}, 6)
	}
	if errs := ValidatePlantsBoard(board); len(errs) != 0 {
		t.Errorf("5x6 board should pass, got %v", errs)
	}

	if errs := ValidatePlantsBoard(board[:4]); len(errs) == 0 {
		t.Error("short board should fail")
	}

	ragged := make([][]interface{}, 5)
	for i := range ragged {
		ragged[i] = make([]interface{}, 6)
	}
	ragged[2] = make([]interface{}, 5)
	if errs := ValidatePlantsBoard(ragged); len(errs) == 0 {
		t.Error("ragged board should fail")
	}
}
