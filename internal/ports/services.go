package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/core/internal/domain/entities"
)

// TaskService interface for board operations. Every mutating operation takes
// an explicit actor; a nil actor means the write came from an automated
// process and is attributed to "system" in the audit trail.
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest, actor *entities.User) (*entities.Task, error)
	GetTask(ctx context.Context, id int64) (*entities.Task, error)
	UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest, actor *entities.User) (*entities.Task, error)
	AdvanceTask(ctx context.Context, id int64, actor *entities.User) (*entities.Task, error)
	RegressTask(ctx context.Context, id int64, actor *entities.User) (*entities.Task, error)
	ArchiveTask(ctx context.Context, id int64, actor *entities.User) (*entities.Task, error)
	RestoreTask(ctx context.Context, id int64, actor *entities.User) (*entities.Task, error)
	TouchTask(ctx context.Context, id int64, actor *entities.User) (*entities.Task, error)
	BackdateTask(ctx context.Context, id int64, at time.Time, actor *entities.User) (*entities.Task, error)
	DeleteTask(ctx context.Context, id int64, actor *entities.User) error
	ListTasks(ctx context.Context, filter TaskFilter) ([]*entities.Task, int, error)
	RecentActivities(ctx context.Context, taskID int64, limit int) ([]*entities.TaskActivity, error)
}

// NoteService interface for quick note operations
type NoteService interface {
	CreateNote(ctx context.Context, req CreateNoteRequest, actor *entities.User) (*entities.QuickNote, error)
	GetNote(ctx context.Context, id int64) (*entities.QuickNote, error)
	UpdateNote(ctx context.Context, id int64, req UpdateNoteRequest) (*entities.QuickNote, error)
	DeleteNote(ctx context.Context, id int64) error
	ListNotes(ctx context.Context, filter NoteFilter) ([]*entities.QuickNote, error)
}

// AuthService interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// Request/Response Types

// Task related types
type CreateTaskRequest struct {
	Title       string               `json:"title" validate:"required,max=500"`
	Description *string              `json:"description" validate:"omitempty,max=2000"`
	Assignee    entities.Assignee    `json:"assignee" validate:"required"`
	Status      *entities.TaskStatus `json:"status" validate:"omitempty"`
	Priority    *entities.Priority   `json:"priority" validate:"omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string              `json:"title" validate:"omitempty,max=500"`
	Description *string              `json:"description" validate:"omitempty,max=2000"`
	Assignee    *entities.Assignee   `json:"assignee" validate:"omitempty"`
	Status      *entities.TaskStatus `json:"status" validate:"omitempty"`
	Priority    *entities.Priority   `json:"priority" validate:"omitempty"`
}

type BackdateRequest struct {
	LastWorkedOn time.Time `json:"last_worked_on" validate:"required"`
}

// Note related types
type CreateNoteRequest struct {
	Title   string  `json:"title" validate:"required,max=500"`
	Content *string `json:"content" validate:"omitempty,max=10000"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=500"`
	Content *string `json:"content" validate:"omitempty,max=10000"`
}

// User related types
type CreateUserRequest struct {
	Username    string            `json:"username" validate:"required,max=50"`
	Password    string            `json:"password" validate:"required,min=8"`
	DisplayName string            `json:"display_name" validate:"omitempty,max=100"`
	Role        entities.UserRole `json:"role" validate:"required"`
}

// Auth related types
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *entities.User `json:"user"`
}

type Claims struct {
	UserID   string            `json:"user_id"`
	Username string            `json:"username"`
	Role     entities.UserRole `json:"role"`
}

// Response types for pagination and common structures
type PaginatedResponse[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
