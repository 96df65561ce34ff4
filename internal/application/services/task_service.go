package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// TaskService handles board operations on tasks: creation, tracked updates,
// workflow transitions, the archive lifecycle and the audit trail.
type TaskService struct {
	taskRepo     ports.TaskRepository
	activityRepo ports.ActivityRepository
	logger       *logger.Logger
	now          func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, activityRepo ports.ActivityRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateTask creates a new task and appends its creation activity. Status
// defaults to backlog and priority to medium when omitted.
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest, actor *entities.User) (*entities.Task, error) {
	task := &entities.Task{
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
		Status:      entities.DefaultTaskStatus,
		Priority:    entities.DefaultPriority,
		OwnerUserID: actorID(actor),
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	if ve := task.Validate(); ve != nil {
		return nil, ve
	}

	created, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.appendActivity(ctx, &entities.TaskActivity{
		TaskID:       created.ID,
		ActivityType: entities.ActivityCreated,
		Description:  entities.DeriveCreated(created),
		Changeset:    entities.Changeset{},
		ActorID:      actorID(actor),
	})

	s.logger.Infow("Task created", "task_id", created.ID, "title", created.Title, "status", created.Status)

	return created, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id int64) (*entities.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

// UpdateTask performs a tracked update: it validates the new field values,
// touches last_worked_on when status or assignee moved, persists the write
// and appends exactly one activity describing what changed. A write that
// changes nothing recognized appends no activity.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, req ports.UpdateTaskRequest, actor *entities.User) (*entities.Task, error) {
	existing, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Description != nil {
		updated.Description = req.Description
	}
	if req.Assignee != nil {
		updated.Assignee = *req.Assignee
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.Priority != nil {
		updated.Priority = *req.Priority
	}

	return s.applyTracked(ctx, existing, &updated, actor)
}

// AdvanceTask moves the task one step forward in the workflow sequence.
// A task already at the terminal status is left unchanged and no activity
// is appended.
func (s *TaskService) AdvanceTask(ctx context.Context, id int64, actor *entities.User) (*entities.Task, error) {
	existing, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, ok := existing.NextStatus()
	if !ok {
		return existing, nil
	}

	updated := *existing
	updated.Status = next
	return s.applyTracked(ctx, existing, &updated, actor)
}

// RegressTask mirrors AdvanceTask toward the start of the sequence.
func (s *TaskService) RegressTask(ctx context.Context, id int64, actor *entities.User) (*entities.Task, error) {
	existing, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prev, ok := existing.PreviousStatus()
	if !ok {
		return existing, nil
	}

	updated := *existing
	updated.Status = prev
	return s.applyTracked(ctx, existing, &updated, actor)
}

// ArchiveTask soft-deletes the task. The write flips only the archived flag,
// bypassing field validation, and the activity is a dedicated archived record
// rather than a diff-derived one. last_worked_on is not touched.
func (s *TaskService) ArchiveTask(ctx context.Context, id int64, actor *entities.User) (*entities.Task, error) {
	task, err := s.taskRepo.SetArchived(ctx, id, true)
	if err != nil {
		return nil, err
	}

	s.appendActivity(ctx, &entities.TaskActivity{
		TaskID:       task.ID,
		ActivityType: entities.ActivityArchived,
		Description:  entities.DeriveArchived(actorName(actor)),
		Changeset:    entities.Changeset{},
		ActorID:      actorID(actor),
	})

	s.logger.Infow("Task archived", "task_id", task.ID, "actor", actorName(actor))

	return task, nil
}

// RestoreTask reverses ArchiveTask with the same bypass-validation write.
func (s *TaskService) RestoreTask(ctx context.Context, id int64, actor *entities.User) (*entities.Task, error) {
	task, err := s.taskRepo.SetArchived(ctx, id, false)
	if err != nil {
		return nil, err
	}

	s.appendActivity(ctx, &entities.TaskActivity{
		TaskID:       task.ID,
		ActivityType: entities.ActivityRestored,
		Description:  entities.DeriveRestored(actorName(actor)),
		Changeset:    entities.Changeset{},
		ActorID:      actorID(actor),
	})

	s.logger.Infow("Task restored", "task_id", task.ID, "actor", actorName(actor))

	return task, nil
}

// TouchTask marks the task as worked on right now without any other change.
// No activity is appended.
func (s *TaskService) TouchTask(ctx context.Context, id int64, actor *entities.User) (*entities.Task, error) {
	now := s.now()
	task, err := s.taskRepo.SetLastWorkedOn(ctx, id, &now)
	if err != nil {
		return nil, err
	}

	s.logger.Debugw("Task touched", "task_id", task.ID, "actor", actorName(actor))

	return task, nil
}

// BackdateTask sets last_worked_on to an arbitrary caller-supplied time.
// This is the only path that may write a non-wall-clock value and it is
// restricted to admins.
func (s *TaskService) BackdateTask(ctx context.Context, id int64, at time.Time, actor *entities.User) (*entities.Task, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, entities.ErrUnauthorized
	}

	task, err := s.taskRepo.SetLastWorkedOn(ctx, id, &at)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Task backdated", "task_id", task.ID, "last_worked_on", at, "actor", actorName(actor))

	return task, nil
}

// DeleteTask physically removes the task row. This is the rarely used admin
// path; the user-facing delete action is ArchiveTask. The deleted activity is
// written first and goes down with the row when activities cascade.
func (s *TaskService) DeleteTask(ctx context.Context, id int64, actor *entities.User) error {
	if actor == nil || !actor.IsAdmin() {
		return entities.ErrUnauthorized
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.appendActivity(ctx, &entities.TaskActivity{
		TaskID:       task.ID,
		ActivityType: entities.ActivityDeleted,
		Description:  entities.DeriveDeleted(task),
		Changeset:    entities.Changeset{},
		ActorID:      actorID(actor),
	})

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Infow("Task deleted", "task_id", id, "actor", actorName(actor))

	return nil
}

// ListTasks retrieves tasks with filtering and pagination
func (s *TaskService) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, int, error) {
	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// RecentActivities returns the task's audit records newest-first.
func (s *TaskService) RecentActivities(ctx context.Context, taskID int64, limit int) ([]*entities.TaskActivity, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListByTask(ctx, taskID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, nil
}

// applyTracked is the tracked update path shared by UpdateTask, AdvanceTask
// and RegressTask. It validates, diffs the before/after snapshots, touches
// last_worked_on when status or assignee changed, persists the write and
// appends the derived activity. The activity write is a separate statement
// after the task write; a crash between the two loses the activity, which
// matches the original behavior.
func (s *TaskService) applyTracked(ctx context.Context, before, after *entities.Task, actor *entities.User) (*entities.Task, error) {
	if ve := after.Validate(); ve != nil {
		return nil, ve
	}

	changes := entities.DiffTasks(before, after)

	if _, ok := changes["status"]; ok {
		now := s.now()
		after.LastWorkedOn = &now
	} else if _, ok := changes["assignee"]; ok {
		now := s.now()
		after.LastWorkedOn = &now
	}

	updated, err := s.taskRepo.Update(ctx, before.ID, ports.TaskUpdate{
		Title:        after.Title,
		Description:  after.Description,
		Assignee:     after.Assignee,
		Status:       after.Status,
		Priority:     after.Priority,
		LastWorkedOn: after.LastWorkedOn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if activityType, description, ok := entities.DeriveActivity(changes); ok {
		s.appendActivity(ctx, &entities.TaskActivity{
			TaskID:       updated.ID,
			ActivityType: activityType,
			Description:  description,
			Changeset:    changes,
			ActorID:      actorID(actor),
		})
	}

	s.logger.Infow("Task updated", "task_id", updated.ID, "changed_fields", len(changes))

	return updated, nil
}

// appendActivity writes one audit record. Failures are logged and swallowed
// so an activity write never fails the mutation it describes.
func (s *TaskService) appendActivity(ctx context.Context, activity *entities.TaskActivity) {
	if _, err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Errorw("Failed to append activity", "task_id", activity.TaskID, "activity_type", activity.ActivityType, "error", err)
	}
}

func actorID(actor *entities.User) *uuid.UUID {
	if actor == nil {
		return nil
	}
	id := actor.ID
	return &id
}

func actorName(actor *entities.User) string {
	if actor == nil {
		return ""
	}
	if actor.DisplayName != "" {
		return actor.DisplayName
	}
	return actor.Username
}
