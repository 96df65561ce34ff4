package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/core/internal/domain/entities"
)

// ArchiveMode selects which archive states a task query returns. The zero
// value is ArchiveModeActive, so every query excludes archived tasks unless
// a caller explicitly widens it.
type ArchiveMode string

const (
	ArchiveModeActive   ArchiveMode = "active"
	ArchiveModeArchived ArchiveMode = "archived"
	ArchiveModeAll      ArchiveMode = "all"
)

// TaskSort selects the ordering of a task listing.
type TaskSort string

const (
	// TaskSortRecent orders by updated_at descending.
	TaskSortRecent TaskSort = "recent"
	// TaskSortLastWorked orders by last_worked_on descending with never-worked
	// tasks last.
	TaskSortLastWorked TaskSort = "last_worked"
)

// TaskFilter narrows a task listing. Predicates compose with logical AND;
// the archive mode applies underneath every other filter.
type TaskFilter struct {
	Assignee    *entities.Assignee
	Status      *entities.TaskStatus
	Priority    *entities.Priority
	ArchiveMode ArchiveMode
	Dormant     bool
	Sort        TaskSort
	Limit       int
	Offset      int
}

// TaskUpdate carries the full set of persisted task columns for a tracked
// write. Repositories persist it as a single statement.
type TaskUpdate struct {
	Title        string
	Description  *string
	Assignee     entities.Assignee
	Status       entities.TaskStatus
	Priority     entities.Priority
	LastWorkedOn *time.Time
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) (*entities.Task, error)
	GetByID(ctx context.Context, id int64) (*entities.Task, error)
	// Update persists a tracked write of the task's mutable fields.
	Update(ctx context.Context, id int64, update TaskUpdate) (*entities.Task, error)
	// SetArchived flips only the archived flag. It bypasses all field
	// validation and does not touch last_worked_on.
	SetArchived(ctx context.Context, id int64, archived bool) (*entities.Task, error)
	// SetLastWorkedOn writes only the last_worked_on timestamp.
	SetLastWorkedOn(ctx context.Context, id int64, at *time.Time) (*entities.Task, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, int, error)
}

// ActivityRepository defines the interface for the append-only audit trail
type ActivityRepository interface {
	Create(ctx context.Context, activity *entities.TaskActivity) (*entities.TaskActivity, error)
	ListByTask(ctx context.Context, taskID int64, limit int) ([]*entities.TaskActivity, error)
}

// NoteRepository defines the interface for quick note data operations
type NoteRepository interface {
	Create(ctx context.Context, note *entities.QuickNote) (*entities.QuickNote, error)
	GetByID(ctx context.Context, id int64) (*entities.QuickNote, error)
	Update(ctx context.Context, note *entities.QuickNote) (*entities.QuickNote, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter NoteFilter) ([]*entities.QuickNote, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
}

// NoteFilter narrows a quick note listing.
type NoteFilter struct {
	OwnerUserID *uuid.UUID
	Limit       int
	Offset      int
}
