package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/greenmind-app/greenmind/greenmind/config"
	"github.com/greenmind-app/greenmind/greenmind/database/models"
	"github.com/greenmind-app/greenmind/greenmind/database/repositories"
	"github.com/greenmind-app/greenmind/greenmind/logger"
)

// txRunner is the slice of *bun.DB the service needs for transactional
// work.
type txRunner interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}

// Service implements the check-in and task lifecycle. All methods are
// safe for concurrent use.
type Service struct {
	db        txRunner
	checkIns  repositories.CheckInRepository
	tasks     repositories.UserTaskRepository
	templates repositories.TemplateRepository
	events    repositories.EventRepository
	rng       Rand
	now       func() time.Time
}

func NewService(
	db *bun.DB,
	checkIns repositories.CheckInRepository,
	tasks repositories.UserTaskRepository,
	templates repositories.TemplateRepository,
	events repositories.EventRepository,
) *Service {
	return &Service{
		db:        db,
		checkIns:  checkIns,
		tasks:     tasks,
		templates: templates,
		events:    events,
		rng:       newLockedRand(),
		now:       time.Now,
	}
}

// CheckInInput carries a new daily check-in.
type CheckInInput struct {
	UserID      string
	MoodLevel   int
	EnergyLevel int
	Notes       *string
}

// CheckInResult reports what a check-in produced. Assigned is false
// when a task for the day already existed, in which case Task is that
// existing task.
type CheckInResult struct {
	CheckIn  *models.CheckIn
	Task     *models.UserTask
	Assigned bool
}

// CreateCheckIn records a check-in and assigns the day's task in one
// transaction. A second check-in on the same day keeps the existing
// task.
func (s *Service) CreateCheckIn(ctx context.Context, input CheckInInput) (*CheckInResult, error) {
	if input.MoodLevel < config.MoodLevelMin || input.MoodLevel > config.MoodLevelMax {
		return nil, ErrInvalidLevel
	}
	if input.EnergyLevel < config.EnergyLevelMin || input.EnergyLevel > config.EnergyLevelMax {
		return nil, ErrInvalidLevel
	}

	all, err := s.templates.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	candidates := FilterCandidates(all, input.MoodLevel, input.EnergyLevel)

	now := s.now()
	result := &CheckInResult{}

	err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		checkIn := &models.CheckIn{
			UserID:      input.UserID,
			MoodLevel:   input.MoodLevel,
			EnergyLevel: input.EnergyLevel,
			At:          now,
			Notes:       input.Notes,
		}
		if err := s.checkIns.CreateTx(ctx, tx, checkIn); err != nil {
			return err
		}
		result.CheckIn = checkIn

		// No matching template is not an error: the check-in stands on
		// its own and the day simply has no task.
		if len(candidates) == 0 {
			return nil
		}

		// The day may already carry a task from an earlier check-in.
		existing, err := s.tasks.GetByDateTx(ctx, tx, input.UserID, dateOf(now))
		if err != nil {
			return err
		}
		if existing != nil {
			result.Task = existing
			return nil
		}

		task := &models.UserTask{
			UserID:     input.UserID,
			TemplateID: PickTemplate(s.rng, candidates).ID,
			CheckInID:  &checkIn.ID,
			TaskDate:   dateOf(now),
			ExpiresAt:  now.Add(config.TaskTTL),
			Status:     models.TaskStatusPending,
		}
		err = s.tasks.CreateTx(ctx, tx, task)
		if err == nil {
			result.Task = task
			result.Assigned = true
			return nil
		}
		if !errors.Is(err, repositories.ErrTaskExists) {
			return err
		}

		// Lost the race to a concurrent check-in. The conflict-tolerant
		// insert leaves the transaction usable, so read the winner back.
		existing, err = s.tasks.GetByDateTx(ctx, tx, input.UserID, dateOf(now))
		if err != nil {
			return err
		}
		result.Task = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, input.UserID, models.EventCheckInCreated, &result.CheckIn.ID, map[string]interface{}{
		"mood_level":   input.MoodLevel,
		"energy_level": input.EnergyLevel,
	})
	if result.Assigned {
		s.emit(ctx, input.UserID, models.EventTaskAssigned, &result.Task.ID, map[string]interface{}{
			"template_id": result.Task.TemplateID,
		})
	}
	return result, nil
}

// Assign creates a task directly from a chosen template, outside the
// check-in flow. The (user, day) uniqueness rule still applies and
// surfaces as repositories.ErrTaskExists.
func (s *Service) Assign(ctx context.Context, userID string, templateID int64, checkInID *int64) (*models.UserTask, error) {
	template, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrNotFound
	}

	if checkInID != nil {
		checkIn, err := s.checkIns.GetOwned(ctx, *checkInID, userID)
		if err != nil {
			return nil, err
		}
		if checkIn == nil {
			return nil, ErrNotFound
		}
	}

	now := s.now()
	task := &models.UserTask{
		UserID:     userID,
		TemplateID: templateID,
		CheckInID:  checkInID,
		TaskDate:   dateOf(now),
		ExpiresAt:  now.Add(config.TaskTTL),
		Status:     models.TaskStatusPending,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.emit(ctx, userID, models.EventTaskAssigned, &task.ID, map[string]interface{}{
		"template_id": templateID,
	})
	return task, nil
}

// Get returns a single task with its template. Tasks belonging to
// other users are indistinguishable from missing ones.
func (s *Service) Get(ctx context.Context, id int64, userID string) (*View, error) {
	task, err := s.tasks.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return s.buildView(ctx, task)
}

// List returns the user's tasks, newest day first.
func (s *Service) List(ctx context.Context, userID string, filter repositories.UserTaskFilter) ([]*models.UserTask, error) {
	return s.tasks.List(ctx, userID, filter)
}

// Today returns the current day's task view, or ErrNotFound when no
// check-in happened yet today.
func (s *Service) Today(ctx context.Context, userID string) (*View, error) {
	task, err := s.tasks.GetByDate(ctx, userID, dateOf(s.now()))
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return s.buildView(ctx, task)
}

// Complete marks a pending task as completed.
func (s *Service) Complete(ctx context.Context, id int64, userID string) (*models.UserTask, error) {
	return s.transition(ctx, id, userID, models.TaskStatusCompleted, models.EventTaskDone)
}

// Skip marks a pending task as skipped.
func (s *Service) Skip(ctx context.Context, id int64, userID string) (*models.UserTask, error) {
	return s.transition(ctx, id, userID, models.TaskStatusSkipped, models.EventTaskSkipped)
}

func (s *Service) transition(ctx context.Context, id int64, userID, status, eventType string) (*models.UserTask, error) {
	updated, err := s.tasks.MarkStatus(ctx, id, userID, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, s.classify(ctx, id, userID)
	}

	s.emit(ctx, userID, eventType, &updated.ID, map[string]interface{}{
		"template_id": updated.TemplateID,
	})
	return updated, nil
}

// RequestNew swaps the task's template for a fresh one, consuming one
// of the day's replacement requests.
func (s *Service) RequestNew(ctx context.Context, id int64, userID string) (*models.UserTask, error) {
	task, err := s.tasks.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if task.IsTerminal() {
		return nil, ErrInvalidTransition
	}
	if task.NewTaskRequests >= config.MaxDailyTaskRequests {
		return nil, ErrLimitExceeded
	}

	candidates, err := s.candidatesFor(ctx, task)
	if err != nil {
		return nil, err
	}
	next := PickTemplate(s.rng, excludeTemplate(candidates, task.TemplateID))
	if next == nil {
		return nil, ErrNoTemplates
	}

	updated, err := s.tasks.ReassignTemplate(ctx, id, userID, next.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Lost a race since the pre-check; reclassify from current state.
		return nil, s.classify(ctx, id, userID)
	}

	s.emit(ctx, userID, models.EventRequestNew, &updated.ID, map[string]interface{}{
		"previous_template_id": task.TemplateID,
		"template_id":          updated.TemplateID,
		"new_task_requests":    updated.NewTaskRequests,
	})
	return updated, nil
}

// candidatesFor rebuilds the template pool for a task. When the
// originating check-in is still around its levels narrow the pool,
// otherwise every template qualifies.
func (s *Service) candidatesFor(ctx context.Context, task *models.UserTask) ([]*models.TaskTemplate, error) {
	all, err := s.templates.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if task.CheckInID == nil {
		return all, nil
	}

	checkIn, err := s.checkIns.GetOwned(ctx, *task.CheckInID, task.UserID)
	if err != nil {
		return nil, err
	}
	if checkIn == nil {
		return all, nil
	}

	return FilterCandidates(all, checkIn.MoodLevel, checkIn.EnergyLevel), nil
}

// classify turns a zero-row conditional update into the right error by
// looking at the task's current state.
func (s *Service) classify(ctx context.Context, id int64, userID string) error {
	task, err := s.tasks.GetOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrNotFound
	}
	if task.IsTerminal() {
		return ErrInvalidTransition
	}
	if task.NewTaskRequests >= config.MaxDailyTaskRequests {
		return ErrLimitExceeded
	}
	return fmt.Errorf("task %d update affected no rows", id)
}

func (s *Service) buildView(ctx context.Context, task *models.UserTask) (*View, error) {
	template, err := s.templates.GetByID(ctx, task.TemplateID)
	if err != nil {
		return nil, err
	}
	return BuildView(task, template, s.now(), s.rng), nil
}

// emit records an audit event after the surrounding write committed.
// Event failures are logged, not surfaced: the primary write already
// succeeded.
func (s *Service) emit(ctx context.Context, userID, eventType string, entityID *int64, payload map[string]interface{}) {
	event := &models.UserEvent{
		UserID:     userID,
		EventType:  eventType,
		EntityID:   entityID,
		OccurredAt: s.now(),
		Payload:    payload,
	}
	if err := s.events.Insert(ctx, event); err != nil {
		logger.LogError("Failed to record user event", err, "event_type", eventType)
	}
}

// dateOf truncates an instant to its UTC calendar day.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
