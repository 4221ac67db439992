package tasks

import (
	"time"

	"github.com/greenmind-app/greenmind/greenmind/config"
	"github.com/greenmind-app/greenmind/greenmind/database/models"
)

// Message types shown alongside a task.
const (
	MessageTypeMotivation = "motivation"
	MessageTypeWarning    = "warning"
)

var motivationalMessages = []string{
	"Małe kroki prowadzą do wielkich zmian! 🌱",
	"Każde zadanie to krok ku lepszej wersji siebie! ✨",
	"Jesteś na dobrej drodze! Kontynuuj! 💪",
	"Pamiętaj - postęp jest ważniejszy niż perfekcja! 🎯",
}

const lastTaskWarning = "To Twoje ostatnie zadanie na dziś. Wykorzystaj je mądrze!"

// View is the presentation projection of a task. Expiry is derived
// from the clock at build time, never stored.
type View struct {
	Task              *models.UserTask
	Template          *models.TaskTemplate
	IsExpired         bool
	RemainingRequests int
	Message           string
	MessageType       string
}

// BuildView derives the presentation state of a task at the given
// instant.
func BuildView(task *models.UserTask, template *models.TaskTemplate, now time.Time, rng Rand) *View {
	remaining := config.MaxDailyTaskRequests - task.NewTaskRequests
	if remaining < 0 {
		remaining = 0
	}

	view := &View{
		Task:              task,
		Template:          template,
		IsExpired:         now.After(task.ExpiresAt),
		RemainingRequests: remaining,
	}

	if remaining == 0 && task.Status == models.TaskStatusPending {
		view.Message = lastTaskWarning
		view.MessageType = MessageTypeWarning
	} else {
		view.Message = motivationalMessages[rng.Intn(len(motivationalMessages))]
		view.MessageType = MessageTypeMotivation
	}
	return view
}
