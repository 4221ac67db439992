package models

import (
	"github.com/greenmind-app/greenmind/greenmind/database/repositories"
)

// Repositories bundles all repository dependencies
type Repositories struct {
	User     repositories.UserRepository
	CheckIn  repositories.CheckInRepository
	UserTask repositories.UserTaskRepository
	Template repositories.TemplateRepository
	Event    repositories.EventRepository
	Plants   repositories.PlantsRepository
}

// NewRepositories creates a new repository bundle
func NewRepositories(
	user repositories.UserRepository,
	checkIn repositories.CheckInRepository,
	userTask repositories.UserTaskRepository,
	template repositories.TemplateRepository,
	event repositories.EventRepository,
	plants repositories.PlantsRepository,
) *Repositories {
	return &Repositories{
		User:     user,
		CheckIn:  checkIn,
		UserTask: userTask,
		Template: template,
		Event:    event,
		Plants:   plants,
	}
}
