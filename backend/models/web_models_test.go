package models

import (
	"reflect"
	"testing"

	dbmodels "github.com/greenmind-app/greenmind/greenmind/database/models"
)

func TestNewTemplateResponseConstraints(t *testing.T) {
	mood := 4
	resp := NewTemplateResponse(&dbmodels.TaskTemplate{
		ID:                1,
		Title:             "Spacer",
		RequiredMoodLevel: &mood,
	})

	if got, want := resp.Constraints.MoodLevels, []int{4}; !reflect.DeepEqual(got, want) {
		t.Errorf("MoodLevels = %v, want %v", got, want)
	}
	if got, want := resp.Constraints.EnergyLevels, []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("EnergyLevels = %v, want %v", got, want)
	}
}

func TestNewTemplateResponseUnconstrained(t *testing.T) {
	resp := NewTemplateResponse(&dbmodels.TaskTemplate{ID: 2, Title: "Herbata"})

	if got, want := resp.Constraints.MoodLevels, []int{1, 2, 3, 4, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("MoodLevels = %v, want %v", got, want)
	}
	if got, want := resp.Constraints.EnergyLevels, []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("EnergyLevels = %v, want %v", got, want)
	}
}
