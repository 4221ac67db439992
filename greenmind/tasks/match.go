package tasks

import (
	"github.com/greenmind-app/greenmind/greenmind/database/models"
)

// MatchesLevels reports whether a template is suitable for the given
// mood and energy levels. A nil requirement matches any level.
func MatchesLevels(t *models.TaskTemplate, moodLevel, energyLevel int) bool {
	if t.RequiredMoodLevel != nil && *t.RequiredMoodLevel != moodLevel {
		return false
	}
	if t.RequiredEnergyLevel != nil && *t.RequiredEnergyLevel != energyLevel {
		return false
	}
	return true
}

// FilterCandidates keeps the templates matching the given levels,
// preserving input order.
func FilterCandidates(templates []*models.TaskTemplate, moodLevel, energyLevel int) []*models.TaskTemplate {
	candidates := make([]*models.TaskTemplate, 0, len(templates))
	for _, t := range templates {
		if MatchesLevels(t, moodLevel, energyLevel) {
			candidates = append(candidates, t)
		}
	}
	return candidates
}

// PickTemplate selects one candidate uniformly at random. It returns
// nil when there are no candidates.
func PickTemplate(rng Rand, candidates []*models.TaskTemplate) *models.TaskTemplate {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[rng.Intn(len(candidates))]
}

// excludeTemplate drops the template with the given ID. When that
// would leave nothing to pick from, the original slice is returned so
// a single-template catalog still yields an assignment.
func excludeTemplate(templates []*models.TaskTemplate, id int64) []*models.TaskTemplate {
	filtered := make([]*models.TaskTemplate, 0, len(templates))
	for _, t := range templates {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return templates
	}
	return filtered
}
