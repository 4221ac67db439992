package tasks

import (
	"testing"

	"github.com/greenmind-app/greenmind/greenmind/database/models"
)

func intPtr(v int) *int { return &v }

func TestMatchesLevels(t *testing.T) {
	tests := []struct {
		name     string
		template *models.TaskTemplate
		mood     int
		energy   int
		want     bool
	}{
		{
			name:     "no requirements matches anything",
			template: &models.TaskTemplate{},
			mood:     1,
			energy:   3,
			want:     true,
		},
		{
			name:     "mood requirement met",
			template: &models.TaskTemplate{RequiredMoodLevel: intPtr(2)},
			mood:     2,
			energy:   1,
			want:     true,
		},
		{
			name:     "mood requirement not met",
			template: &models.TaskTemplate{RequiredMoodLevel: intPtr(2)},
			mood:     4,
			energy:   1,
			want:     false,
		},
		{
			name: "both requirements must match",
			template: &models.TaskTemplate{
				RequiredMoodLevel:   intPtr(3),
				RequiredEnergyLevel: intPtr(2),
			},
			mood:   3,
			energy: 1,
			want:   false,
		},
		{
			name: "both requirements met",
			template: &models.TaskTemplate{
				RequiredMoodLevel:   intPtr(3),
				RequiredEnergyLevel: intPtr(2),
			},
			mood:   3,
			energy: 2,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesLevels(tt.template, tt.mood, tt.energy); got != tt.want {
				t.Errorf("MatchesLevels() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterCandidates(t *testing.T) {
	templates := []*models.TaskTemplate{
		{ID: 1},
		{ID: 2, RequiredMoodLevel: intPtr(2)},
		{ID: 3, RequiredEnergyLevel: intPtr(3)},
		{ID: 4, RequiredMoodLevel: intPtr(2), RequiredEnergyLevel: intPtr(3)},
	}

	got := FilterCandidates(templates, 2, 3)
	if len(got) != 4 {
		t.Fatalf("expected all 4 candidates, got %d", len(got))
	}

	got = FilterCandidates(templates, 5, 1)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only unconstrained template, got %v", got)
	}
}

func TestPickTemplate(t *testing.T) {
	templates := []*models.TaskTemplate{{ID: 1}, {ID: 2}, {ID: 3}}

	if got := PickTemplate(fixedRand{1}, templates); got.ID != 2 {
		t.Errorf("expected template 2, got %d", got.ID)
	}
	if got := PickTemplate(fixedRand{0}, nil); got != nil {
		t.Errorf("expected nil for empty candidates, got %v", got)
	}
}

func TestExcludeTemplate(t *testing.T) {
	templates := []*models.TaskTemplate{{ID: 1}, {ID: 2}}

	got := excludeTemplate(templates, 1)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected template 2 only, got %v", got)
	}

	// A single-template catalog falls back to itself.
	single := []*models.TaskTemplate{{ID: 7}}
	got = excludeTemplate(single, 7)
	if len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("expected fallback to original slice, got %v", got)
	}
}
